package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookshop-bot/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `
        user_id,
        COALESCE(username, '') AS username,
        COALESCE(first_name, '') AS first_name,
        COALESCE(last_name, '') AS last_name,
        COALESCE(phone, '') AS phone,
        COALESCE(group_name, '') AS group_name,
        registration_date,
        total_orders,
        total_spent`

// UserRepository handles persistence for users.
type UserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert registers a user on first contact and refreshes their telegram
// identity fields on every later one. Aggregates are never touched here.
func (r *UserRepository) Upsert(user models.User) error {
	query := `
        INSERT INTO users (user_id, username, first_name, last_name)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE SET
            username = EXCLUDED.username,
            first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name
    `

	_, err := r.db.Exec(query, user.UserID, user.Username, user.FirstName, user.LastName)
	if err != nil {
		r.logger.Error("failed to upsert user",
			zap.Error(err),
			zap.Int64("user_id", user.UserID),
		)
		return err
	}

	return nil
}

// UpdateContact stores the group and phone collected during an order flow.
func (r *UserRepository) UpdateContact(userID int64, groupName, phone string) error {
	query := `UPDATE users SET group_name = $1, phone = $2 WHERE user_id = $3`

	_, err := r.db.Exec(query, groupName, phone, userID)
	if err != nil {
		r.logger.Error("failed to update user contact",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return err
	}

	return nil
}

func (r *UserRepository) GetByID(userID int64) (models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	err := r.db.Get(&user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		r.logger.Error("failed to get user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return models.User{}, err
	}

	return user, nil
}

// userSearchWhere renders the OR-search predicate over name, group and
// phone. Placeholder numbering starts at $1.
func userSearchWhere(search string) (string, []interface{}) {
	if search == "" {
		return "", nil
	}
	arg := "%" + strings.ToLower(search) + "%"
	where := ` WHERE (LOWER(first_name) LIKE $1
            OR LOWER(group_name) LIKE $1
            OR LOWER(phone) LIKE $1)`
	return where, []interface{}{arg}
}

// Count returns the number of users matching the search text.
func (r *UserRepository) Count(search string) (int, error) {
	where, args := userSearchWhere(search)

	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM users`+where, args...)
	if err != nil {
		r.logger.Error("failed to count users", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// ListPaginated returns one page of users, newest registration first.
// The page is expected to be already clamped by the caller.
func (r *UserRepository) ListPaginated(page, pageSize int, search string) ([]models.User, error) {
	where, args := userSearchWhere(search)

	query := fmt.Sprintf(`SELECT `+userColumns+` FROM users`+where+`
        ORDER BY registration_date DESC
        LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	var users []models.User
	if err := r.db.Select(&users, query, args...); err != nil {
		r.logger.Error("failed to list users",
			zap.Error(err),
			zap.Int("page", page),
		)
		return nil, err
	}

	return users, nil
}

// ExportAll returns every user, newest registration first, for the
// tabular export.
func (r *UserRepository) ExportAll() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY registration_date DESC`

	var users []models.User
	if err := r.db.Select(&users, query); err != nil {
		r.logger.Error("failed to export users", zap.Error(err))
		return nil, err
	}

	return users, nil
}
