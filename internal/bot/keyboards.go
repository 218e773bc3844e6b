package bot

import (
	"fmt"
	"strconv"

	"bookshop-bot/internal/catalog"
	"bookshop-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard(t *Texts, isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.MenuBuy),
			tgbotapi.NewKeyboardButton(t.MenuTrack),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.MenuHelp),
			tgbotapi.NewKeyboardButton(t.MenuAbout),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(t.MenuAdmin),
		))
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// productKeyboard lays the catalog out two buttons per row, in catalog
// order.
func productKeyboard(t *Texts) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, p := range catalog.Products() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%s %s", p.Emoji, p.Name),
			"product_"+p.ID,
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(t.ViewAllPrices, cbViewAllPrices),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(t.BackToMenuBtn, cbBackToMain),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func quantityKeyboard(t *Texts) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for base := 1; base <= 7; base += 3 {
		var row []tgbotapi.InlineKeyboardButton
		for n := base; n < base+3; n++ {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				strconv.Itoa(n), fmt.Sprintf("qty_%d", n)))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("10+", cbQtyCustom),
		tgbotapi.NewInlineKeyboardButtonData(t.BackBtn, cbBackToProducts),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmationKeyboard(t *Texts, withCancel bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.ConfirmBtn, cbConfirmOrder),
			tgbotapi.NewInlineKeyboardButtonData(t.EditBtn, cbEditOrder),
		),
	}
	if withCancel {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.CancelBtn, cbCancelOrder),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func paymentKeyboard(t *Texts, orderID int64, abaPayURL, developer string) tgbotapi.InlineKeyboardMarkup {
	contactURL := "https://t.me/" + developer
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.PayKHQRBtn, fmt.Sprintf("pay_khqr_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(t.PayABABtn, abaPayURL),
			tgbotapi.NewInlineKeyboardButtonData(t.PayCashBtn, fmt.Sprintf("pay_cash_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.UploadProofBtn, fmt.Sprintf("upload_proof_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.BackToMenuBtn, cbBackToMain),
			tgbotapi.NewInlineKeyboardButtonURL(t.ContactBtn, contactURL),
		),
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func trackOrdersKeyboard(t *Texts) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.BuyMoreBtn, cbChooseProduct),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t.BackToMenuBtn, cbBackToMain),
		),
	)
}

// Admin console keyboards. The copy here is English in every locale.

const (
	adminBtnStats   = "📊 Statistics"
	adminBtnOrders  = "📋 View All Orders"
	adminBtnPending = "⏳ Pending Orders"
	adminBtnVerify  = "📸 Verify Payments"
	adminBtnExport  = "📥 Download Export"
	adminBtnUsers   = "👥 View Users"
	adminBtnMain    = "🔙 Main Menu"
)

func adminPanelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(adminBtnStats),
			tgbotapi.NewKeyboardButton(adminBtnOrders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(adminBtnPending),
			tgbotapi.NewKeyboardButton(adminBtnVerify),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(adminBtnExport),
			tgbotapi.NewKeyboardButton(adminBtnUsers),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(adminBtnMain),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func adminFilterKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 All Orders", "filter_all"),
			tgbotapi.NewInlineKeyboardButtonData("⏳ Pending", "filter_pending"),
			tgbotapi.NewInlineKeyboardButtonData("📸 Verify", "filter_awaiting_verification"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Completed", "filter_completed"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Rejected", "filter_rejected"),
			tgbotapi.NewInlineKeyboardButtonData("💰 Today", "filter_today"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 This Week", "filter_week"),
			tgbotapi.NewInlineKeyboardButtonData("📅 This Month", "filter_month"),
			tgbotapi.NewInlineKeyboardButtonData("🔍 Search", cbAdminSearch),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Stats", cbAdminStats),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbAdminBack),
		),
	)
}

// paginationKeyboard builds the navigation for the admin orders list:
// prev/next, a sliding window of page numbers when there are more than
// five pages, plus search/export/stats shortcuts.
func paginationKeyboard(view ordersView, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var nav []tgbotapi.InlineKeyboardButton
	if view.Page > 1 {
		prev := view
		prev.Page--
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️ Previous", prev.token()))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
		fmt.Sprintf("📄 %d/%d", view.Page, totalPages), cbNoop))
	if view.Page < totalPages {
		next := view
		next.Page++
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ➡️", next.token()))
	}
	rows = append(rows, nav)

	if totalPages > 5 {
		first, last := utils.PageWindow(view.Page, totalPages)
		var window []tgbotapi.InlineKeyboardButton
		for p := first; p <= last; p++ {
			if p == view.Page {
				window = append(window, tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("•%d•", p), cbNoop))
				continue
			}
			jump := view
			jump.Page = p
			window = append(window, tgbotapi.NewInlineKeyboardButtonData(
				strconv.Itoa(p), jump.token()))
		}
		rows = append(rows, window)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔍 Search", cbAdminSearch),
		tgbotapi.NewInlineKeyboardButtonData("📥 Export", exportToken(view.Status, view.Period)),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 Stats", cbAdminStats),
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbAdminBack),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func usersPaginationKeyboard(page, totalPages int, search string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if totalPages > 1 {
		var nav []tgbotapi.InlineKeyboardButton
		if page > 1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", usersToken(page-1, search)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("📄 %d/%d", page, totalPages), cbNoop))
		if page < totalPages {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", usersToken(page+1, search)))
		}
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔍 Search Users", cbAdminSearchUsers),
		tgbotapi.NewInlineKeyboardButtonData("📥 Export Users", cbAdminExportUsers),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbAdminBack),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// orderActionsKeyboard is shown under a single order's detail view. The
// back button returns to the first page of the unfiltered order list.
func orderActionsKeyboard(orderID int64, view ordersView) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm Payment", fmt.Sprintf("admin_confirm_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", fmt.Sprintf("admin_reject_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📞 Contact Buyer", fmt.Sprintf("admin_contact_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("💰 Complete Order", fmt.Sprintf("admin_complete_%d", orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Add Note", fmt.Sprintf("admin_note_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", view.token()),
		),
	)
}

// proofReviewKeyboard is attached to the forwarded payment screenshot.
func proofReviewKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm Payment", fmt.Sprintf("admin_confirm_%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", fmt.Sprintf("admin_reject_%d", orderID)),
		),
	)
}

func exportMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 All Orders", "export_all"),
			tgbotapi.NewInlineKeyboardButtonData("⏳ Pending", "export_pending"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📸 Verifying", "export_awaiting_verification"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Completed", "export_completed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Today", "export_today"),
			tgbotapi.NewInlineKeyboardButtonData("📅 This Week", "export_week"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 This Month", "export_month"),
			tgbotapi.NewInlineKeyboardButtonData("👥 Users List", "export_users"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbAdminBack),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", cbAdminBack),
		),
	)
}
