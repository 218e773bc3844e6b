package models

import "time"

type OrderStatus string

const (
	OrderStatusPending              OrderStatus = "pending"
	OrderStatusAwaitingVerification OrderStatus = "awaiting_verification"
	OrderStatusConfirmed            OrderStatus = "confirmed"
	OrderStatusRejected             OrderStatus = "rejected"
	OrderStatusCompleted            OrderStatus = "completed"
)

// AllStatuses lists every order status in lifecycle order.
var AllStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAwaitingVerification,
	OrderStatusConfirmed,
	OrderStatusRejected,
	OrderStatusCompleted,
}

// Icon returns the emoji used for the status in lists and summaries.
func (s OrderStatus) Icon() string {
	switch s {
	case OrderStatusPending:
		return "⏳"
	case OrderStatusAwaitingVerification:
		return "📸"
	case OrderStatusConfirmed:
		return "✅"
	case OrderStatusRejected:
		return "❌"
	case OrderStatusCompleted:
		return "🎉"
	default:
		return "📝"
	}
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Payment method tags persisted on orders.
const (
	PaymentKHQR         = "KHQR"
	PaymentCash         = "Cash"
	PaymentBankTransfer = "Bank Transfer"
)

type User struct {
	UserID       int64     `db:"user_id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Phone        string    `db:"phone"`
	GroupName    string    `db:"group_name"`
	RegisteredAt time.Time `db:"registration_date"`
	TotalOrders  int       `db:"total_orders"`
	TotalSpent   float64   `db:"total_spent"`
}

type Order struct {
	OrderID       int64       `db:"order_id"`
	UserID        int64       `db:"user_id"`
	ProductName   string      `db:"product_name"`
	Quantity      int         `db:"quantity"`
	TotalPrice    float64     `db:"total_price"`
	Status        OrderStatus `db:"status"`
	PaymentMethod string      `db:"payment_method"`
	PaymentProof  string      `db:"payment_proof"`
	OrderDate     time.Time   `db:"order_date"`
	AdminNotes    string      `db:"admin_notes"`

	// Buyer fields joined from users for list/detail views.
	BuyerName  string `db:"buyer_name"`
	BuyerGroup string `db:"buyer_group"`
	BuyerPhone string `db:"buyer_phone"`
	BuyerLogin string `db:"buyer_login"`
}

type Product struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Emoji     string  `db:"emoji"`
	Stock     int     `db:"stock"`
	TotalSold int     `db:"total_sold"`
}

// ProductSale is one row of the per-product sales ranking.
type ProductSale struct {
	ProductName string `db:"product_name"`
	UnitsSold   int    `db:"units_sold"`
}

type Statistics struct {
	TotalOrders  int
	StatusCounts map[OrderStatus]int
	Revenue      float64
	TotalUsers   int
	TodayOrders  int
	TodayRevenue float64
	ProductSales []ProductSale
}

// Message is one inbound text or photo message from the transport.
type Message struct {
	ChatID      int64
	Text        string
	Username    string
	FullName    string
	PhotoFileID string // largest photo variant, empty for text messages
}

type CallbackQuery struct {
	ID        string
	UserID    int64
	UserName  string
	UserLogin string
	MessageID int
	ChatID    int64
	Data      string
}
