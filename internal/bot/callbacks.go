package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback action tokens. These are the wire contract with the inline
// keyboards and must round-trip exactly, "none" sentinels included.
const (
	cbChooseProduct  = "choose_product"
	cbViewAllPrices  = "view_all_prices"
	cbBackToMain     = "back_to_main"
	cbBackToProducts = "back_to_products"
	cbConfirmOrder   = "confirm_order"
	cbEditOrder      = "edit_order"
	cbCancelOrder    = "cancel_order"
	cbQtyCustom      = "qty_custom"
	cbNoop           = "noop"

	cbAdminSearch      = "admin_search"
	cbAdminSearchUsers = "admin_search_users"
	cbAdminStats       = "admin_stats"
	cbAdminBack        = "admin_back"
	cbAdminExportUsers = "admin_export_users"

	noneSentinel = "none"
)

// knownStatusTokens are the status filter values accepted on the wire,
// longest first so that prefix matching never splits
// "awaiting_verification" at its inner underscore.
var knownStatusTokens = []string{
	"awaiting_verification",
	"completed",
	"confirmed",
	"rejected",
	"pending",
	"all",
}

// parseInt64Suffix extracts the numeric tail of tokens like
// "admin_confirm_123".
func parseInt64Suffix(data, prefix string) (int64, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ordersView addresses one page of the admin orders list together with
// its filter state, as carried inside navigation tokens.
type ordersView struct {
	Page   int
	Status string // "all" or one of the order statuses
	Period string // "none", "today", "week" or "month"
	Search string // empty when no search is active
}

func defaultOrdersView() ordersView {
	return ordersView{Page: 1, Status: "all", Period: noneSentinel}
}

// token renders admin_orders_<page>_<status>_<date|none>_<search|none>.
func (v ordersView) token() string {
	period := v.Period
	if period == "" {
		period = noneSentinel
	}
	search := v.Search
	if search == "" {
		search = noneSentinel
	}
	return fmt.Sprintf("admin_orders_%d_%s_%s_%s", v.Page, v.Status, period, search)
}

// parseOrdersView reads an admin_orders token back. The search text is
// the trailing segment, so underscores inside it survive; the status is
// matched against known values for the same reason.
func parseOrdersView(data string) (ordersView, bool) {
	rest, found := strings.CutPrefix(data, "admin_orders_")
	if !found {
		return ordersView{}, false
	}

	pageStr, rest, found := strings.Cut(rest, "_")
	if !found {
		return ordersView{}, false
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return ordersView{}, false
	}

	v := ordersView{Page: page, Status: "all", Period: noneSentinel}

	matched := false
	for _, status := range knownStatusTokens {
		if rest == status || strings.HasPrefix(rest, status+"_") {
			v.Status = status
			rest = strings.TrimPrefix(strings.TrimPrefix(rest, status), "_")
			matched = true
			break
		}
	}
	if !matched {
		return ordersView{}, false
	}
	if rest == "" {
		return v, true
	}

	period, rest, _ := strings.Cut(rest, "_")
	v.Period = period
	if v.Period == "" {
		v.Period = noneSentinel
	}

	if rest != "" && rest != noneSentinel {
		v.Search = rest
	}
	return v, true
}

// usersToken renders admin_users_<page>_<search|none>.
func usersToken(page int, search string) string {
	if search == "" {
		search = noneSentinel
	}
	return fmt.Sprintf("admin_users_%d_%s", page, search)
}

// parseUsersView reads an admin_users token back. As above, the search
// text is the trailing segment.
func parseUsersView(data string) (page int, search string, ok bool) {
	rest, found := strings.CutPrefix(data, "admin_users_")
	if !found {
		return 0, "", false
	}

	pageStr, rest, _ := strings.Cut(rest, "_")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, "", false
	}

	if rest != "" && rest != noneSentinel {
		search = rest
	}
	return page, search, true
}

// exportToken renders admin_export_<status>_<date|none>.
func exportToken(status, period string) string {
	if period == "" {
		period = noneSentinel
	}
	return fmt.Sprintf("admin_export_%s_%s", status, period)
}

// parseExportToken reads admin_export_<status>_<date|none> back.
func parseExportToken(data string) (status, period string, ok bool) {
	rest, found := strings.CutPrefix(data, "admin_export_")
	if !found {
		return "", "", false
	}

	for _, known := range knownStatusTokens {
		if rest == known || strings.HasPrefix(rest, known+"_") {
			status = known
			rest = strings.TrimPrefix(strings.TrimPrefix(rest, known), "_")
			if rest == "" || rest == noneSentinel {
				return status, "", true
			}
			return status, rest, true
		}
	}
	return "", "", false
}
