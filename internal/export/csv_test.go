package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop-bot/internal/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteOrders_ColumnContract(t *testing.T) {
	orders := []models.Order{
		{
			OrderID:       7,
			ProductName:   "Math Book",
			Quantity:      3,
			TotalPrice:    5.10,
			Status:        models.OrderStatusPending,
			PaymentMethod: models.PaymentKHQR,
			OrderDate:     time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			AdminNotes:    "picked up",
			BuyerName:     "Dara",
			BuyerGroup:    "A1",
			BuyerPhone:    "012345678",
		},
	}

	path, err := WriteOrders(orders)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, OrderColumns, records[0])
	assert.Equal(t, []string{
		"7", "Dara", "A1", "012345678", "Math Book", "3",
		"5.10", "pending", "KHQR", "2025-06-15 09:00:00", "picked up",
	}, records[1])
}

func TestWriteUsers_ColumnContract(t *testing.T) {
	users := []models.User{
		{
			UserID:       100,
			FirstName:    "Sok",
			GroupName:    "Civil M3",
			Phone:        "098765432",
			RegisteredAt: time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC),
			TotalOrders:  2,
			TotalSpent:   4.20,
		},
	}

	path, err := WriteUsers(users)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, UserColumns, records[0])
	assert.Equal(t, []string{
		"100", "Sok", "Civil M3", "098765432", "2025-01-02 08:30:00", "2", "4.20",
	}, records[1])
}

func TestWriteOrders_EmptySetStillHasHeader(t *testing.T) {
	path, err := WriteOrders(nil)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	records := readCSV(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, OrderColumns, records[0])
}
