package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop-bot/internal/models"
)

var noon = time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

func TestPeriodCutoff(t *testing.T) {
	cases := []struct {
		period Period
		want   time.Time
		ok     bool
	}{
		{PeriodToday, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{PeriodWeek, noon.AddDate(0, 0, -7), true},
		{PeriodMonth, noon.AddDate(0, 0, -30), true},
		{PeriodNone, time.Time{}, false},
	}

	for _, tc := range cases {
		got, ok := tc.period.Cutoff(noon)
		require.Equal(t, tc.ok, ok, "period %q", tc.period)
		assert.Equal(t, tc.want, got, "period %q", tc.period)
	}
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodWeek, ParsePeriod("week"))
	assert.Equal(t, PeriodNone, ParsePeriod("none"))
	assert.Equal(t, PeriodNone, ParsePeriod(""))
	assert.Equal(t, PeriodNone, ParsePeriod("jiffy"))
}

func TestOrderFilter_WhereClause(t *testing.T) {
	t.Run("empty filter has no where", func(t *testing.T) {
		where, args := OrderFilter{Now: noon}.whereClause()
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("status all is no filter", func(t *testing.T) {
		where, args := OrderFilter{Status: "all", Now: noon}.whereClause()
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("status only", func(t *testing.T) {
		where, args := OrderFilter{Status: models.OrderStatusPending, Now: noon}.whereClause()
		assert.Equal(t, " WHERE o.status = $1", where)
		require.Len(t, args, 1)
		assert.Equal(t, models.OrderStatusPending, args[0])
	})

	t.Run("filters are conjunctive and ordered", func(t *testing.T) {
		f := OrderFilter{
			Status: models.OrderStatusCompleted,
			Period: PeriodWeek,
			Search: "Dara",
			Now:    noon,
		}
		where, args := f.whereClause()
		assert.Contains(t, where, "o.status = $1")
		assert.Contains(t, where, "o.order_date >= $2")
		assert.Contains(t, where, "LIKE $3")
		require.Len(t, args, 3)
		assert.Equal(t, noon.AddDate(0, 0, -7), args[1])
		assert.Equal(t, "%dara%", args[2], "search is lowercased for case-insensitive match")
	})

	t.Run("search ORs over id, name, group and product", func(t *testing.T) {
		where, _ := OrderFilter{Search: "a1", Now: noon}.whereClause()
		assert.Contains(t, where, "CAST(o.order_id AS TEXT) LIKE $1")
		assert.Contains(t, where, "LOWER(u.first_name) LIKE $1")
		assert.Contains(t, where, "LOWER(u.group_name) LIKE $1")
		assert.Contains(t, where, "LOWER(o.product_name) LIKE $1")
	})
}
