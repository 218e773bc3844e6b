package database

import (
	"fmt"
	"strings"
	"time"

	"bookshop-bot/internal/models"
)

// nowFunc is swappable in tests.
var nowFunc = time.Now

// Period narrows a query to a creation-date range.
type Period string

const (
	PeriodNone  Period = ""
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a wire token to a Period, treating unknown values and
// the "none" sentinel as no filter.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return Period(s)
	default:
		return PeriodNone
	}
}

// Cutoff returns the inclusive lower bound for order dates, or ok=false
// when the period does not restrict dates.
func (p Period) Cutoff(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// OrderFilter is the conjunctive predicate of the admin console. Status
// "" (or "all" on the wire) matches every status; Search is an
// OR-combined case-insensitive substring match over order id, buyer
// name, group and product name.
type OrderFilter struct {
	Status models.OrderStatus
	Period Period
	Search string

	// Now anchors the date cutoffs; the zero value means time.Now().
	Now time.Time
}

func (f OrderFilter) now() time.Time {
	if f.Now.IsZero() {
		return time.Now()
	}
	return f.Now
}

// whereClause renders the filter as a WHERE fragment over the orders
// join ("o" = orders, "u" = users). Placeholders start at $1.
func (f OrderFilter) whereClause() (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}

	if f.Status != "" && f.Status != "all" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("o.status = $%d", len(args)))
	}

	if cutoff, ok := f.Period.Cutoff(f.now()); ok {
		args = append(args, cutoff)
		conds = append(conds, fmt.Sprintf("o.order_date >= $%d", len(args)))
	}

	if f.Search != "" {
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(CAST(o.order_id AS TEXT) LIKE $%d"+
				" OR LOWER(u.first_name) LIKE $%d"+
				" OR LOWER(u.group_name) LIKE $%d"+
				" OR LOWER(o.product_name) LIKE $%d)",
			n, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
