package bot

import (
	"fmt"
	"strconv"
	"strings"

	"bookshop-bot/internal/catalog"
	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"
	"bookshop-bot/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const maxQuantity = 50

func formatWelcome(t *Texts) string {
	return fmt.Sprintf(t.Welcome, priceLines())
}

func formatHelp(t *Texts, developer string) string {
	return fmt.Sprintf(t.Help, developer)
}

func formatAbout(t *Texts, developer string) string {
	return fmt.Sprintf(t.About, developer)
}

func priceLines() string {
	var b strings.Builder
	for _, p := range catalog.Products() {
		fmt.Fprintf(&b, "%s %s - %s\n", p.Emoji, p.Name, utils.Money(p.Price))
	}
	return b.String()
}

func (s *Service) sendProductChoice(chatID int64) {
	if err := s.telegram.SendMessageWithInlineKeyboard(chatID, s.texts.ChoosePrompt, productKeyboard(s.texts)); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (s *Service) showAllPrices(cb models.CallbackQuery) {
	text := s.texts.PriceHeader + priceLines()
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.texts.ChooseBookBtn, cbChooseProduct),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(s.texts.BackToMenuBtn, cbBackToMain),
		),
	)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, text, &keyboard); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func (s *Service) backToMain(cb models.CallbackQuery, sess session.Session) {
	sess.ResetFlow()
	s.putSession(cb.UserID, sess)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, s.texts.BackToMain, nil); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func (s *Service) backToProducts(cb models.CallbackQuery, sess session.Session) {
	sess.ResetFlow()
	s.putSession(cb.UserID, sess)
	keyboard := productKeyboard(s.texts)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, s.texts.ChoosePrompt, &keyboard); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

// handleProductChosen snapshots the product into the session. The
// order total is frozen from this snapshot; later catalog changes do
// not affect an order in flight.
func (s *Service) handleProductChosen(cb models.CallbackQuery, productID string, sess session.Session) {
	product, ok := catalog.ByID(productID)
	if !ok {
		s.logger.Warn("unknown product in callback", zap.String("product_id", productID))
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}

	sess.ResetFlow()
	sess.State = session.StateAwaitingName
	sess.ProductID = product.ID
	sess.ProductName = product.Name
	sess.ProductPrice = product.Price
	sess.ProductEmoji = product.Emoji
	s.putSession(cb.UserID, sess)

	text := fmt.Sprintf(s.texts.AskName, product.Emoji, product.Name, utils.Money(product.Price))
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, text, nil); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func (s *Service) handleFlowInput(userID int64, text string, sess session.Session) {
	switch sess.State {
	case session.StateAwaitingName:
		name := strings.TrimSpace(text)
		if name == "" {
			s.replyMarkdown(userID, s.texts.EditPrompt)
			return
		}
		sess.Name = name
		sess.State = session.StateAwaitingGroup
		s.putSession(userID, sess)
		s.replyMarkdown(userID, s.texts.AskGroup)

	case session.StateAwaitingGroup:
		sess.Group = strings.TrimSpace(text)
		sess.State = session.StateAwaitingPhone
		s.putSession(userID, sess)
		s.replyMarkdown(userID, s.texts.AskPhone)

	case session.StateAwaitingPhone:
		if text == "/skip" {
			sess.Phone = s.texts.PhonePlaceholder
		} else {
			sess.Phone = strings.TrimSpace(text)
		}
		if err := s.users.UpdateContact(userID, sess.Group, sess.Phone); err != nil {
			s.logger.Error("contact update failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		sess.State = session.StateAwaitingQuantity
		s.putSession(userID, sess)
		text := fmt.Sprintf(s.texts.AskQuantity, sess.ProductEmoji, sess.ProductName, utils.Money(sess.ProductPrice))
		if err := s.telegram.SendMessageWithInlineKeyboard(userID, text, quantityKeyboard(s.texts)); err != nil {
			s.logger.Error("send failed", zap.Int64("chat_id", userID), zap.Error(err))
		}

	case session.StateAwaitingCustomQuantity:
		qty, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			s.reply(userID, s.texts.ErrQuantityNaN)
			return
		}
		if qty < 1 {
			s.reply(userID, s.texts.ErrQuantityLow)
			return
		}
		if qty > maxQuantity {
			s.reply(userID, s.texts.ErrQuantityHigh)
			return
		}
		sess.Quantity = qty
		sess.State = session.StateConfirmation
		s.putSession(userID, sess)
		s.sendOrderSummary(userID, sess)

	case session.StateConfirmation:
		s.sendOrderSummary(userID, sess)

	default:
		s.reply(userID, s.texts.DefaultReply)
	}
}

// rePrompt re-asks the question for the session's current state, used
// when a stale inline button arrives out of order.
func (s *Service) rePrompt(userID int64, sess session.Session) {
	switch sess.State {
	case session.StateAwaitingName:
		s.replyMarkdown(userID, s.texts.EditPrompt)
	case session.StateAwaitingGroup:
		s.replyMarkdown(userID, s.texts.AskGroup)
	case session.StateAwaitingPhone:
		s.replyMarkdown(userID, s.texts.AskPhone)
	case session.StateAwaitingCustomQuantity:
		s.replyMarkdown(userID, s.texts.AskCustomQuantity)
	default:
		s.reply(userID, s.texts.DefaultReply)
	}
}

func (s *Service) askCustomQuantity(cb models.CallbackQuery, sess session.Session) {
	if sess.State != session.StateAwaitingQuantity || sess.ProductName == "" {
		s.rePrompt(cb.ChatID, sess)
		return
	}
	sess.State = session.StateAwaitingCustomQuantity
	s.putSession(cb.UserID, sess)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, s.texts.AskCustomQuantity, nil); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

// handleQuantityButton accepts a quantity only while the session is
// actually asking for one; a stale keyboard from an earlier message
// must not skip the collection steps.
func (s *Service) handleQuantityButton(cb models.CallbackQuery, raw string, sess session.Session) {
	if sess.State != session.StateAwaitingQuantity || sess.ProductName == "" {
		s.rePrompt(cb.ChatID, sess)
		return
	}
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 1 || qty > maxQuantity {
		s.logger.Warn("bad quantity callback", zap.String("data", cb.Data))
		return
	}

	sess.Quantity = qty
	sess.State = session.StateConfirmation
	s.putSession(cb.UserID, sess)

	text := orderSummaryText(s.texts, sess)
	keyboard := confirmationKeyboard(s.texts, s.cfg.ConfirmCancelButton)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, text, &keyboard); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func orderSummaryText(t *Texts, sess session.Session) string {
	return fmt.Sprintf(t.OrderSummary,
		sess.ProductEmoji, sess.ProductName,
		utils.EscapeMarkdown(sess.Name), utils.EscapeMarkdown(sess.Group), sess.Phone,
		sess.Quantity, utils.Money(sess.Total()))
}

func (s *Service) sendOrderSummary(userID int64, sess session.Session) {
	text := orderSummaryText(s.texts, sess)
	keyboard := confirmationKeyboard(s.texts, s.cfg.ConfirmCancelButton)
	if err := s.telegram.SendMessageWithInlineKeyboard(userID, text, keyboard); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", userID), zap.Error(err))
	}
}

// handleConfirmOrder creates the order and moves the user to payment.
// The row is inserted together with the buyer and sales aggregates in
// one transaction; failures leave nothing behind.
func (s *Service) handleConfirmOrder(cb models.CallbackQuery, sess session.Session) {
	if sess.State != session.StateConfirmation || sess.Quantity < 1 || sess.ProductName == "" {
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}

	total := sess.Total()
	orderID, err := s.orders.Create(cb.UserID, sess.ProductName, sess.Quantity, total)
	if err != nil {
		s.logger.Error("order create failed", zap.Int64("user_id", cb.UserID), zap.Error(err))
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, orderSummaryText(s.texts, sess), nil); err != nil {
		s.logger.Warn("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}

	s.sendPaymentInstructions(cb.ChatID, orderID, total)
	s.notifyAdminNewOrder(orderID, cb, sess, total)

	sess.ResetFlow()
	s.putSession(cb.UserID, sess)
}

// sendPaymentInstructions delivers the KHQR image with the payment
// keyboard, falling back to a text-only message when the QR artifact
// cannot be fetched. A fetch failure never blocks the order.
func (s *Service) sendPaymentInstructions(chatID, orderID int64, total float64) {
	keyboard := paymentKeyboard(s.texts, orderID, s.cfg.ABAPayURL, s.cfg.Developer)

	qr, err := s.qr.Fetch()
	if err != nil {
		s.logger.Warn("qr fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		text := fmt.Sprintf(s.texts.PaymentFallback, s.cfg.KHQRURL, s.cfg.ABAPayURL, orderID)
		if err := s.telegram.SendMessageWithInlineKeyboard(chatID, text, keyboard); err != nil {
			s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return
	}

	caption := fmt.Sprintf(s.texts.PaymentCaption, orderID, utils.Money(total))
	if err := s.telegram.SendPhotoBytes(chatID, "khqr.jpg", qr, caption, &keyboard); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	info := fmt.Sprintf(s.texts.PaymentInfo, s.cfg.ABAPayURL, orderID, utils.Money(total))
	if err := s.telegram.SendMarkdownMessage(chatID, info); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// notifyAdminNewOrder is best effort: a delivery failure is logged and
// never surfaces to the buyer.
func (s *Service) notifyAdminNewOrder(orderID int64, cb models.CallbackQuery, sess session.Session, total float64) {
	login := cb.UserLogin
	if login == "" {
		login = "no username"
	}
	text := fmt.Sprintf(`🔔 *New Order #%d*

%s *Book:* %s
👤 *Name:* %s (@%s)
👥 *Group:* %s
📞 *Phone:* %s
🔢 *Quantity:* %d
💰 *Total:* %s`,
		orderID,
		sess.ProductEmoji, sess.ProductName,
		utils.EscapeMarkdown(sess.Name), login,
		utils.EscapeMarkdown(sess.Group), sess.Phone,
		sess.Quantity, utils.Money(total))

	if err := s.telegram.SendMarkdownMessage(s.cfg.AdminID, text); err != nil {
		s.logger.Warn("admin notify failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

// handleEditOrder restarts data collection but keeps the product
// snapshot, so the buyer does not pick the book again.
func (s *Service) handleEditOrder(cb models.CallbackQuery, sess session.Session) {
	if sess.ProductName == "" {
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}
	sess.Name = ""
	sess.Group = ""
	sess.Phone = ""
	sess.Quantity = 0
	sess.State = session.StateAwaitingName
	s.putSession(cb.UserID, sess)

	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, s.texts.EditPrompt, nil); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func (s *Service) handleCancelOrder(cb models.CallbackQuery, sess session.Session) {
	sess.ResetFlow()
	s.putSession(cb.UserID, sess)
	if err := s.telegram.EditMessage(cb.ChatID, cb.MessageID, s.texts.Cancelled, nil); err != nil {
		s.logger.Error("edit failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

const trackOrdersLimit = 10

func (s *Service) sendTrackOrders(chatID int64) {
	orders, err := s.orders.ListByUser(chatID)
	if err != nil {
		s.logger.Error("order list failed", zap.Int64("user_id", chatID), zap.Error(err))
		s.reply(chatID, s.texts.ErrorReply)
		return
	}

	keyboard := trackOrdersKeyboard(s.texts)
	if len(orders) == 0 {
		if err := s.telegram.SendMessageWithInlineKeyboard(chatID, s.texts.TrackEmpty, keyboard); err != nil {
			s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		return
	}
	if len(orders) > trackOrdersLimit {
		orders = orders[:trackOrdersLimit]
	}

	var b strings.Builder
	b.WriteString(s.texts.TrackHeader)
	for _, o := range orders {
		fmt.Fprintf(&b, "%s *#%d* %s x%d - %s\n📅 %s | %s\n\n",
			o.Status.Icon(), o.OrderID, o.ProductName, o.Quantity,
			utils.Money(o.TotalPrice),
			o.OrderDate.Format("2006-01-02 15:04"), o.Status)
	}
	if err := s.telegram.SendMessageWithInlineKeyboard(chatID, b.String(), keyboard); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
