package database

import (
	"database/sql"
	"errors"
	"fmt"

	"bookshop-bot/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrOrderNotFound = errors.New("order not found")

const orderColumns = `
        o.order_id,
        o.user_id,
        o.product_name,
        o.quantity,
        o.total_price,
        o.status,
        COALESCE(o.payment_method, '') AS payment_method,
        COALESCE(o.payment_proof, '') AS payment_proof,
        o.order_date,
        COALESCE(o.admin_notes, '') AS admin_notes,
        COALESCE(u.first_name, '') AS buyer_name,
        COALESCE(u.group_name, '') AS buyer_group,
        COALESCE(u.phone, '') AS buyer_phone,
        COALESCE(u.username, '') AS buyer_login`

const orderFrom = ` FROM orders o JOIN users u ON o.user_id = u.user_id`

// OrderRepository handles persistence for orders, including the
// aggregate counters that must move together with order creation.
type OrderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewOrderRepository(db *sqlx.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the order and bumps the buyer's aggregates and the
// product sold counter in one transaction. Either all three writes land
// or none of them do.
func (r *OrderRepository) Create(userID int64, productName string, quantity int, totalPrice float64) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.Get(&orderID, `
        INSERT INTO orders (user_id, product_name, quantity, total_price, status)
        VALUES ($1, $2, $3, $4, 'pending')
        RETURNING order_id
    `, userID, productName, quantity, totalPrice)
	if err != nil {
		r.logger.Error("failed to insert order",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, err
	}

	_, err = tx.Exec(`
        UPDATE users SET
            total_orders = total_orders + 1,
            total_spent = total_spent + $1
        WHERE user_id = $2
    `, totalPrice, userID)
	if err != nil {
		r.logger.Error("failed to update user aggregates",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return 0, err
	}

	// Fire-and-forget counter, not a reservation.
	_, err = tx.Exec(`
        UPDATE products SET total_sold = total_sold + $1 WHERE name = $2
    `, quantity, productName)
	if err != nil {
		r.logger.Error("failed to update product counter",
			zap.Error(err),
			zap.String("product", productName),
		)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit order", zap.Error(err))
		return 0, err
	}

	r.logger.Info("order created",
		zap.Int64("order_id", orderID),
		zap.Int64("user_id", userID),
		zap.String("product", productName),
		zap.Int("quantity", quantity),
		zap.Float64("total", totalPrice),
	)
	return orderID, nil
}

// UpdatePayment records the chosen payment method (and proof marker, if
// any) and moves the order to awaiting_verification.
func (r *OrderRepository) UpdatePayment(orderID int64, method, proof string) error {
	query := `
        UPDATE orders
        SET payment_method = $1,
            payment_proof = NULLIF($2, ''),
            status = 'awaiting_verification'
        WHERE order_id = $3
    `

	result, err := r.db.Exec(query, method, proof, orderID)
	if err != nil {
		r.logger.Error("failed to update order payment",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// UpdateStatus persists an admin status transition and returns the
// owning user id so the caller can notify the buyer. The write is
// unconditional: re-applying a terminal status is an idempotent
// overwrite.
func (r *OrderRepository) UpdateStatus(orderID int64, status models.OrderStatus, note string) (int64, error) {
	var userID int64
	err := r.db.Get(&userID, `
        UPDATE orders
        SET status = $1,
            admin_notes = COALESCE(NULLIF($2, ''), admin_notes)
        WHERE order_id = $3
        RETURNING user_id
    `, status, note, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOrderNotFound
		}
		r.logger.Error("failed to update order status",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return 0, err
	}

	r.logger.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)
	return userID, nil
}

// SetNote attaches a free-text admin note without touching the status.
func (r *OrderRepository) SetNote(orderID int64, note string) error {
	result, err := r.db.Exec(`UPDATE orders SET admin_notes = $1 WHERE order_id = $2`, note, orderID)
	if err != nil {
		r.logger.Error("failed to set order note",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) GetByID(orderID int64) (models.Order, error) {
	var order models.Order
	query := `SELECT` + orderColumns + orderFrom + ` WHERE o.order_id = $1`

	err := r.db.Get(&order, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		r.logger.Error("failed to get order",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return models.Order{}, err
	}

	return order, nil
}

// Count returns the number of orders matching the filter. It uses the
// same predicate as ListPaginated so the two can never drift.
func (r *OrderRepository) Count(filter OrderFilter) (int, error) {
	where, args := filter.whereClause()

	var count int
	err := r.db.Get(&count, `SELECT COUNT(*)`+orderFrom+where, args...)
	if err != nil {
		r.logger.Error("failed to count orders", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ListPaginated returns one page of orders with buyer fields, newest
// first. The page is expected to be already clamped by the caller.
func (r *OrderRepository) ListPaginated(filter OrderFilter, page, pageSize int) ([]models.Order, error) {
	where, args := filter.whereClause()

	query := fmt.Sprintf(`SELECT`+orderColumns+orderFrom+where+`
        ORDER BY o.order_date DESC
        LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	var orders []models.Order
	if err := r.db.Select(&orders, query, args...); err != nil {
		r.logger.Error("failed to list orders",
			zap.Error(err),
			zap.Int("page", page),
		)
		return nil, err
	}

	return orders, nil
}

// ListByUser returns all of one user's orders, newest first.
func (r *OrderRepository) ListByUser(userID int64) ([]models.Order, error) {
	query := `SELECT` + orderColumns + orderFrom + `
        WHERE o.user_id = $1
        ORDER BY o.order_date DESC`

	var orders []models.Order
	if err := r.db.Select(&orders, query, userID); err != nil {
		r.logger.Error("failed to list user orders",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, err
	}

	return orders, nil
}

// LatestUnresolved returns the user's newest order still waiting on
// payment or verification.
func (r *OrderRepository) LatestUnresolved(userID int64) (models.Order, error) {
	query := `SELECT` + orderColumns + orderFrom + `
        WHERE o.user_id = $1
          AND o.status IN ('pending', 'awaiting_verification')
        ORDER BY o.order_date DESC
        LIMIT 1`

	var order models.Order
	err := r.db.Get(&order, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		r.logger.Error("failed to get latest unresolved order",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return models.Order{}, err
	}

	return order, nil
}

// Export returns the full filtered result set, unpaginated, for the
// tabular export.
func (r *OrderRepository) Export(filter OrderFilter) ([]models.Order, error) {
	where, args := filter.whereClause()

	query := `SELECT` + orderColumns + orderFrom + where + ` ORDER BY o.order_date DESC`

	var orders []models.Order
	if err := r.db.Select(&orders, query, args...); err != nil {
		r.logger.Error("failed to export orders", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

// Statistics aggregates the shop numbers. Revenue counts completed
// orders only; confirmed-but-not-completed money is not recognized yet.
func (r *OrderRepository) Statistics() (models.Statistics, error) {
	stats := models.Statistics{StatusCounts: make(map[models.OrderStatus]int)}

	if err := r.db.Get(&stats.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil {
		r.logger.Error("failed to count orders", zap.Error(err))
		return stats, err
	}

	rows, err := r.db.Queryx(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		r.logger.Error("failed to count orders by status", zap.Error(err))
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.StatusCounts[status] = count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	err = r.db.Get(&stats.Revenue,
		`SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status = 'completed'`)
	if err != nil {
		r.logger.Error("failed to sum revenue", zap.Error(err))
		return stats, err
	}

	if err := r.db.Get(&stats.TotalUsers, `SELECT COUNT(*) FROM users`); err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return stats, err
	}

	today, _ := PeriodToday.Cutoff(nowFunc())
	err = r.db.Get(&stats.TodayOrders,
		`SELECT COUNT(*) FROM orders WHERE order_date >= $1`, today)
	if err != nil {
		r.logger.Error("failed to count today's orders", zap.Error(err))
		return stats, err
	}

	err = r.db.Get(&stats.TodayRevenue, `
        SELECT COALESCE(SUM(total_price), 0) FROM orders
        WHERE order_date >= $1 AND status = 'completed'`, today)
	if err != nil {
		r.logger.Error("failed to sum today's revenue", zap.Error(err))
		return stats, err
	}

	err = r.db.Select(&stats.ProductSales, `
        SELECT product_name, SUM(quantity) AS units_sold
        FROM orders
        WHERE status = 'completed'
        GROUP BY product_name
        ORDER BY units_sold DESC`)
	if err != nil {
		r.logger.Error("failed to rank product sales", zap.Error(err))
		return stats, err
	}

	return stats, nil
}
