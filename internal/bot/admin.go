package bot

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bookshop-bot/internal/database"
	"bookshop-bot/internal/export"
	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"
	"bookshop-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const adminPanelText = "👑 *Admin Panel*\n\nChoose an option:"

func (c *AdminConsole) OpenPanel(chatID int64) {
	if err := c.telegram.SendMessageWithKeyboard(chatID, adminPanelText, adminPanelKeyboard()); err != nil {
		c.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// HandleButton routes the admin reply-keyboard shortcuts. It reports
// whether the text matched one of them.
func (c *AdminConsole) HandleButton(chatID int64, text string) bool {
	switch text {
	case adminBtnStats:
		c.sendStatistics(chatID, 0)
	case adminBtnOrders:
		c.showOrders(chatID, 0, defaultOrdersView())
	case adminBtnPending:
		c.showOrders(chatID, 0, ordersView{Page: 1, Status: string(models.OrderStatusPending), Period: noneSentinel})
	case adminBtnVerify:
		c.showOrders(chatID, 0, ordersView{Page: 1, Status: string(models.OrderStatusAwaitingVerification), Period: noneSentinel})
	case adminBtnExport:
		c.sendExportMenu(chatID, 0)
	case adminBtnUsers:
		c.showUsers(chatID, 0, 1, "")
	case adminBtnMain:
		if err := c.telegram.SendMessageWithKeyboard(chatID, c.texts.BackToMain, mainMenuKeyboard(c.texts, true)); err != nil {
			c.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	default:
		return false
	}
	return true
}

// ConsumePrompt takes the free-text message an earlier inline action
// asked for. The prompt is disarmed before anything else runs.
func (c *AdminConsole) ConsumePrompt(chatID int64, text string, sess session.Session) {
	prompt := sess.AdminPrompt
	sess.AdminPrompt = session.AdminPrompt{}
	if err := c.sessions.Put(chatID, sess); err != nil {
		c.logger.Error("session save failed", zap.Int64("user_id", chatID), zap.Error(err))
	}

	switch prompt.Kind {
	case session.PromptSearchOrders:
		view := defaultOrdersView()
		view.Search = normalizeSearch(text)
		c.showOrders(chatID, 0, view)
	case session.PromptSearchUsers:
		c.showUsers(chatID, 0, 1, normalizeSearch(text))
	case session.PromptNoteFor:
		note := strings.TrimSpace(text)
		if err := c.orders.SetNote(prompt.OrderID, note); err != nil {
			c.logger.Error("note save failed", zap.Int64("order_id", prompt.OrderID), zap.Error(err))
			c.send(chatID, c.texts.ErrorReply)
			return
		}
		c.send(chatID, fmt.Sprintf("📝 Note saved for order #%d.", prompt.OrderID))
	}
}

// normalizeSearch keeps the query representable inside callback
// tokens: segments are underscore-separated, so spaces become
// underscores and the repository lowercases both sides anyway. The
// cap is a hard cut, not an ellipsis, so the stored query still
// substring-matches real rows.
func normalizeSearch(text string) string {
	s := strings.TrimSpace(text)
	s = strings.ReplaceAll(s, " ", "_")
	if runes := []rune(s); len(runes) > 30 {
		s = string(runes[:30])
	}
	return s
}

func searchForQuery(tokenSearch string) string {
	return strings.ReplaceAll(tokenSearch, "_", " ")
}

func (c *AdminConsole) HandleCallback(cb models.CallbackQuery) {
	data := cb.Data

	if view, ok := parseOrdersView(data); ok {
		c.showOrders(cb.ChatID, cb.MessageID, view)
		return
	}
	if page, search, ok := parseUsersView(data); ok {
		c.showUsers(cb.ChatID, cb.MessageID, page, search)
		return
	}
	if status, period, ok := parseExportToken(data); ok {
		c.exportOrders(cb.ChatID, status, period)
		return
	}

	switch data {
	case cbAdminStats:
		c.sendStatistics(cb.ChatID, cb.MessageID)
		return
	case cbAdminBack:
		if err := c.telegram.EditMessage(cb.ChatID, cb.MessageID, adminPanelText, nil); err != nil {
			c.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
		}
		return
	case cbAdminSearch:
		c.armPrompt(cb.ChatID, session.AdminPrompt{Kind: session.PromptSearchOrders},
			"🔍 Type an order id, buyer name, group or book name:")
		return
	case cbAdminSearchUsers:
		c.armPrompt(cb.ChatID, session.AdminPrompt{Kind: session.PromptSearchUsers},
			"🔍 Type a name, username, group or phone number:")
		return
	case cbAdminExportUsers:
		c.exportUsers(cb.ChatID)
		return
	}

	if rest, found := strings.CutPrefix(data, "filter_"); found {
		c.handleFilter(cb, rest)
		return
	}
	if rest, found := strings.CutPrefix(data, "export_"); found {
		c.handleExportChoice(cb.ChatID, rest)
		return
	}

	if orderID, ok := parseInt64Suffix(data, "admin_confirm_"); ok {
		c.setOrderStatus(cb.ChatID, orderID, models.OrderStatusConfirmed)
		return
	}
	if orderID, ok := parseInt64Suffix(data, "admin_reject_"); ok {
		c.setOrderStatus(cb.ChatID, orderID, models.OrderStatusRejected)
		return
	}
	if orderID, ok := parseInt64Suffix(data, "admin_complete_"); ok {
		c.setOrderStatus(cb.ChatID, orderID, models.OrderStatusCompleted)
		return
	}
	if orderID, ok := parseInt64Suffix(data, "admin_view_"); ok {
		c.showOrderDetail(cb.ChatID, cb.MessageID, orderID)
		return
	}
	if orderID, ok := parseInt64Suffix(data, "admin_contact_"); ok {
		c.sendBuyerContact(cb.ChatID, orderID)
		return
	}
	if orderID, ok := parseInt64Suffix(data, "admin_note_"); ok {
		c.armPrompt(cb.ChatID, session.AdminPrompt{Kind: session.PromptNoteFor, OrderID: orderID},
			fmt.Sprintf("📝 Type the note for order #%d:", orderID))
		return
	}

	c.logger.Warn("unknown admin callback", zap.String("data", data))
}

func (c *AdminConsole) armPrompt(chatID int64, prompt session.AdminPrompt, ask string) {
	sess, err := c.sessions.Get(chatID)
	if err != nil {
		c.logger.Error("session load failed", zap.Int64("user_id", chatID), zap.Error(err))
	}
	sess.AdminPrompt = prompt
	if err := c.sessions.Put(chatID, sess); err != nil {
		c.logger.Error("session save failed", zap.Int64("user_id", chatID), zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	c.send(chatID, ask)
}

func (c *AdminConsole) handleFilter(cb models.CallbackQuery, token string) {
	view := defaultOrdersView()
	switch token {
	case "today", "week", "month":
		view.Period = token
	default:
		if token != "all" && !models.OrderStatus(token).Valid() {
			c.logger.Warn("unknown filter", zap.String("token", token))
			return
		}
		view.Status = token
	}
	c.showOrders(cb.ChatID, cb.MessageID, view)
}

func viewFilter(view ordersView) database.OrderFilter {
	return database.OrderFilter{
		Status: models.OrderStatus(view.Status),
		Period: database.ParsePeriod(view.Period),
		Search: searchForQuery(view.Search),
	}
}

// showOrders renders one page of the filtered order list. messageID 0
// sends a fresh message, otherwise the existing view is edited in
// place.
func (c *AdminConsole) showOrders(chatID int64, messageID int, view ordersView) {
	filter := viewFilter(view)

	count, err := c.orders.Count(filter)
	if err != nil {
		c.logger.Error("order count failed", zap.Error(err))
		c.deliver(chatID, messageID, c.texts.ErrorReply, nil)
		return
	}
	if count == 0 {
		keyboard := adminFilterKeyboard()
		c.deliver(chatID, messageID, emptyOrdersText(view), &keyboard)
		return
	}

	totalPages := utils.TotalPages(count, c.cfg.OrdersPerPage)
	view.Page = utils.ClampPage(view.Page, totalPages)

	orders, err := c.orders.ListPaginated(filter, view.Page, c.cfg.OrdersPerPage)
	if err != nil {
		c.logger.Error("order list failed", zap.Error(err))
		c.deliver(chatID, messageID, c.texts.ErrorReply, nil)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d total)\n\n", ordersHeader(view), count)
	for _, o := range orders {
		fmt.Fprintf(&b, "%s *#%d* %s x%d - %s\n👤 %s | 👥 %s\n📅 %s\n\n",
			o.Status.Icon(), o.OrderID, o.ProductName, o.Quantity, utils.Money(o.TotalPrice),
			o.BuyerName, o.BuyerGroup,
			o.OrderDate.Format("2006-01-02 15:04"))
	}

	keyboard := ordersListKeyboard(orders, view, totalPages)
	c.deliver(chatID, messageID, b.String(), &keyboard)
}

// ordersListKeyboard prepends per-order detail buttons to the shared
// pagination controls.
func ordersListKeyboard(orders []models.Order, view ordersView, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, o := range orders {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("#%d", o.OrderID),
			fmt.Sprintf("admin_view_%d", o.OrderID)))
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	nav := paginationKeyboard(view, totalPages)
	rows = append(rows, nav.InlineKeyboard...)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func ordersHeader(view ordersView) string {
	switch {
	case view.Search != "":
		return fmt.Sprintf("🔍 *Orders matching \"%s\"*", searchForQuery(view.Search))
	case view.Status != "all" && view.Status != "":
		return fmt.Sprintf("%s *Orders: %s*", models.OrderStatus(view.Status).Icon(), view.Status)
	case view.Period != noneSentinel && view.Period != "":
		return fmt.Sprintf("📅 *Orders: %s*", view.Period)
	default:
		return "📋 *All Orders*"
	}
}

// Three distinct empty states: an unmatched search, a status with no
// orders, and a quiet period read differently to the admin.
func emptyOrdersText(view ordersView) string {
	switch {
	case view.Search != "":
		return fmt.Sprintf("🔍 No orders match \"%s\".", searchForQuery(view.Search))
	case view.Status != "all" && view.Status != "":
		return fmt.Sprintf("📭 No %s orders right now.", view.Status)
	case view.Period != noneSentinel && view.Period != "":
		return fmt.Sprintf("📭 No orders for this period (%s).", view.Period)
	default:
		return "📭 No orders yet."
	}
}

func (c *AdminConsole) showOrderDetail(chatID int64, messageID int, orderID int64) {
	order, err := c.orders.GetByID(orderID)
	if err != nil {
		c.logger.Error("order lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}

	login := order.BuyerLogin
	if login == "" {
		login = "no username"
	}
	method := order.PaymentMethod
	if method == "" {
		method = "not selected"
	}
	proof := "no"
	if order.PaymentProof != "" {
		proof = "yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *Order #%d* - %s\n\n", order.Status.Icon(), order.OrderID, order.Status)
	fmt.Fprintf(&b, "📚 *Book:* %s x%d\n💰 *Total:* %s\n\n", order.ProductName, order.Quantity, utils.Money(order.TotalPrice))
	fmt.Fprintf(&b, "👤 *Buyer:* %s (@%s)\n👥 *Group:* %s\n📞 *Phone:* %s\n\n",
		utils.EscapeMarkdown(order.BuyerName), login,
		utils.EscapeMarkdown(order.BuyerGroup), order.BuyerPhone)
	fmt.Fprintf(&b, "💳 *Payment:* %s | proof: %s\n📅 *Date:* %s\n", method, proof, order.OrderDate.Format("2006-01-02 15:04"))
	if order.AdminNotes != "" {
		fmt.Fprintf(&b, "\n📝 *Notes:* %s\n", order.AdminNotes)
	}

	keyboard := orderActionsKeyboard(orderID, defaultOrdersView())
	c.deliver(chatID, messageID, b.String(), &keyboard)

	if order.PaymentProof != "" {
		caption := fmt.Sprintf("📸 Proof for order #%d", orderID)
		if err := c.telegram.SendPhotoByFileID(chatID, order.PaymentProof, caption, nil); err != nil {
			c.logger.Warn("proof send failed", zap.Int64("order_id", orderID), zap.Error(err))
		}
	}
}

// setOrderStatus writes the new status first; buyer notification is
// best effort and never rolls the write back.
func (c *AdminConsole) setOrderStatus(chatID, orderID int64, status models.OrderStatus) {
	buyerID, err := c.orders.UpdateStatus(orderID, status, "")
	if err != nil {
		c.logger.Error("status update failed",
			zap.Int64("order_id", orderID), zap.String("status", string(status)), zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	c.logger.Info("order status changed",
		zap.Int64("order_id", orderID), zap.String("status", string(status)))

	c.send(chatID, fmt.Sprintf("%s Order #%d is now *%s*.", status.Icon(), orderID, status))

	var note string
	switch status {
	case models.OrderStatusConfirmed:
		note = fmt.Sprintf(c.texts.UserOrderConfirmed, orderID)
	case models.OrderStatusRejected:
		note = fmt.Sprintf(c.texts.UserOrderRejected, orderID)
	case models.OrderStatusCompleted:
		note = fmt.Sprintf(c.texts.UserOrderCompleted, orderID)
	default:
		return
	}
	if err := c.telegram.SendMarkdownMessage(buyerID, note); err != nil {
		c.logger.Warn("buyer notify failed",
			zap.Int64("order_id", orderID), zap.Int64("user_id", buyerID), zap.Error(err))
	}
}

func (c *AdminConsole) sendBuyerContact(chatID, orderID int64) {
	order, err := c.orders.GetByID(orderID)
	if err != nil {
		c.logger.Error("order lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📞 *Contact for order #%d*\n\n", orderID)
	fmt.Fprintf(&b, "👤 %s\n👥 %s\n📞 %s\n", order.BuyerName, order.BuyerGroup, order.BuyerPhone)
	if order.BuyerLogin != "" {
		fmt.Fprintf(&b, "💬 @%s\n", order.BuyerLogin)
	}
	c.send(chatID, b.String())
}

func (c *AdminConsole) showUsers(chatID int64, messageID, page int, search string) {
	query := searchForQuery(search)

	count, err := c.users.Count(query)
	if err != nil {
		c.logger.Error("user count failed", zap.Error(err))
		c.deliver(chatID, messageID, c.texts.ErrorReply, nil)
		return
	}
	if count == 0 {
		text := "👥 No registered users yet."
		if search != "" {
			text = fmt.Sprintf("🔍 No users match \"%s\".", query)
		}
		keyboard := backKeyboard()
		c.deliver(chatID, messageID, text, &keyboard)
		return
	}

	totalPages := utils.TotalPages(count, c.cfg.UsersPerPage)
	page = utils.ClampPage(page, totalPages)

	users, err := c.users.ListPaginated(page, c.cfg.UsersPerPage, query)
	if err != nil {
		c.logger.Error("user list failed", zap.Error(err))
		c.deliver(chatID, messageID, c.texts.ErrorReply, nil)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 *Users* (%d total)\n\n", count)
	for _, u := range users {
		login := u.Username
		if login == "" {
			login = "no username"
		}
		fmt.Fprintf(&b, "👤 %s (@%s)\n👥 %s | 📞 %s\n🛒 %d orders, %s | since %s\n\n",
			u.FirstName, login,
			u.GroupName, u.Phone,
			u.TotalOrders, utils.Money(u.TotalSpent),
			u.RegisteredAt.Format("2006-01-02"))
	}

	keyboard := usersPaginationKeyboard(page, totalPages, search)
	c.deliver(chatID, messageID, b.String(), &keyboard)
}

func (c *AdminConsole) sendStatistics(chatID int64, messageID int) {
	stats, err := c.orders.Statistics()
	if err != nil {
		c.logger.Error("statistics failed", zap.Error(err))
		c.deliver(chatID, messageID, c.texts.ErrorReply, nil)
		return
	}

	var b strings.Builder
	b.WriteString("📊 *Shop Statistics*\n\n")
	fmt.Fprintf(&b, "📋 *Total orders:* %d\n", stats.TotalOrders)
	for _, status := range models.AllStatuses {
		n := stats.StatusCounts[status]
		pct := 0.0
		if stats.TotalOrders > 0 {
			pct = float64(n) * 100 / float64(stats.TotalOrders)
		}
		fmt.Fprintf(&b, "  %s %s: %d (%.0f%%)\n", status.Icon(), status, n, pct)
	}
	fmt.Fprintf(&b, "\n💰 *Revenue (completed):* %s\n", utils.Money(stats.Revenue))
	fmt.Fprintf(&b, "👥 *Users:* %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "📅 *Today:* %d orders, %s\n", stats.TodayOrders, utils.Money(stats.TodayRevenue))

	if len(stats.ProductSales) > 0 {
		b.WriteString("\n📚 *Books sold:*\n")
		for _, ps := range stats.ProductSales {
			fmt.Fprintf(&b, "  • %s: %d\n", ps.ProductName, ps.UnitsSold)
		}
	}

	keyboard := backKeyboard()
	c.deliver(chatID, messageID, b.String(), &keyboard)
}

func (c *AdminConsole) sendExportMenu(chatID int64, messageID int) {
	keyboard := exportMenuKeyboard()
	c.deliver(chatID, messageID, "📥 *Export*\n\nChoose what to download:", &keyboard)
}

func (c *AdminConsole) handleExportChoice(chatID int64, token string) {
	switch token {
	case "users":
		c.exportUsers(chatID)
	case "today", "week", "month":
		c.exportOrders(chatID, "all", token)
	default:
		c.exportOrders(chatID, token, "")
	}
}

// exportOrders writes the filtered orders to a temporary CSV, ships it
// and removes the file afterwards.
func (c *AdminConsole) exportOrders(chatID int64, status, period string) {
	filter := database.OrderFilter{
		Status: models.OrderStatus(status),
		Period: database.ParsePeriod(period),
	}

	orders, err := c.orders.Export(filter)
	if err != nil {
		c.logger.Error("order export failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	if len(orders) == 0 {
		c.send(chatID, "📭 Nothing to export for that selection.")
		return
	}

	path, err := export.WriteOrders(orders)
	if err != nil {
		c.logger.Error("csv write failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	defer os.Remove(path)

	caption := fmt.Sprintf("📥 *Orders export* (%d rows)\n%s", len(orders), time.Now().Format("2006-01-02 15:04"))
	if err := c.telegram.SendDocument(chatID, path, caption); err != nil {
		c.logger.Error("document send failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
	}
}

func (c *AdminConsole) exportUsers(chatID int64) {
	users, err := c.users.ExportAll()
	if err != nil {
		c.logger.Error("user export failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	if len(users) == 0 {
		c.send(chatID, "👥 No registered users yet.")
		return
	}

	path, err := export.WriteUsers(users)
	if err != nil {
		c.logger.Error("csv write failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
		return
	}
	defer os.Remove(path)

	caption := fmt.Sprintf("📥 *Users export* (%d rows)", len(users))
	if err := c.telegram.SendDocument(chatID, path, caption); err != nil {
		c.logger.Error("document send failed", zap.Error(err))
		c.send(chatID, c.texts.ErrorReply)
	}
}

func (c *AdminConsole) send(chatID int64, text string) {
	if err := c.telegram.SendMarkdownMessage(chatID, text); err != nil {
		c.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// deliver edits in place when the action came from an inline keyboard,
// otherwise sends a fresh message.
func (c *AdminConsole) deliver(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var err error
	if messageID != 0 {
		err = c.telegram.EditMessage(chatID, messageID, text, keyboard)
	} else if keyboard != nil {
		err = c.telegram.SendMessageWithInlineKeyboard(chatID, text, *keyboard)
	} else {
		err = c.telegram.SendMarkdownMessage(chatID, text)
	}
	if err != nil {
		c.logger.Error("deliver failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
