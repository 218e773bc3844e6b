// Package export renders the admin's tabular artifacts. Column order is
// a wire contract and must not change.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bookshop-bot/internal/models"
)

const dateLayout = "2006-01-02 15:04:05"

// OrderColumns is the fixed header of the orders export.
var OrderColumns = []string{
	"Order ID", "Name", "Group", "Phone", "Product", "Quantity",
	"Total Price", "Status", "Payment Method", "Order Date", "Admin Notes",
}

// UserColumns is the fixed header of the users export.
var UserColumns = []string{
	"User ID", "Name", "Group", "Phone", "Registration Date",
	"Total Orders", "Total Spent",
}

// WriteOrders writes the orders to a temp CSV file and returns its path.
// The caller is responsible for removing the file after delivery.
func WriteOrders(orders []models.Order) (string, error) {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.FormatInt(o.OrderID, 10),
			o.BuyerName,
			o.BuyerGroup,
			o.BuyerPhone,
			o.ProductName,
			strconv.Itoa(o.Quantity),
			fmt.Sprintf("%.2f", o.TotalPrice),
			string(o.Status),
			o.PaymentMethod,
			o.OrderDate.Format(dateLayout),
			o.AdminNotes,
		})
	}

	name := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	return writeFile(name, OrderColumns, rows)
}

// WriteUsers writes the users to a temp CSV file and returns its path.
func WriteUsers(users []models.User) (string, error) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			strconv.FormatInt(u.UserID, 10),
			u.FirstName,
			u.GroupName,
			u.Phone,
			u.RegisteredAt.Format(dateLayout),
			strconv.Itoa(u.TotalOrders),
			fmt.Sprintf("%.2f", u.TotalSpent),
		})
	}

	name := fmt.Sprintf("users_%s.csv", time.Now().Format("20060102_150405"))
	return writeFile(name, UserColumns, rows)
}

func writeFile(name string, header []string, rows [][]string) (string, error) {
	path := filepath.Join(os.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write export header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write export rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export: %w", err)
	}

	return path, nil
}
