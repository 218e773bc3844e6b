package bot

import (
	"errors"
	"fmt"

	"bookshop-bot/internal/database"
	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"
	"bookshop-bot/internal/utils"

	"go.uber.org/zap"
)

func (s *Service) handlePayKHQR(cb models.CallbackQuery, orderID int64, sess session.Session) {
	if err := s.orders.UpdatePayment(orderID, models.PaymentKHQR, ""); err != nil {
		s.logger.Error("payment update failed", zap.Int64("order_id", orderID), zap.Error(err))
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}

	s.replyMarkdown(cb.ChatID, fmt.Sprintf(s.texts.KHQRSelected, orderID))

	qr, err := s.qr.Fetch()
	if err != nil {
		// Degrade to the text variant carrying the same payment URLs
		// and order id.
		s.logger.Warn("qr fetch failed", zap.Int64("order_id", orderID), zap.Error(err))
		fallback := fmt.Sprintf(s.texts.PaymentFallback, s.cfg.KHQRURL, s.cfg.ABAPayURL, orderID)
		s.replyMarkdown(cb.ChatID, fallback)
		return
	}
	caption := fmt.Sprintf(s.texts.QRAgainCaption, orderID)
	if err := s.telegram.SendPhotoBytes(cb.ChatID, "khqr.jpg", qr, caption, nil); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", cb.ChatID), zap.Error(err))
	}
}

func (s *Service) handlePayCash(cb models.CallbackQuery, orderID int64, sess session.Session) {
	if err := s.orders.UpdatePayment(orderID, models.PaymentCash, ""); err != nil {
		s.logger.Error("payment update failed", zap.Int64("order_id", orderID), zap.Error(err))
		s.reply(cb.ChatID, s.texts.ErrorReply)
		return
	}

	s.replyMarkdown(cb.ChatID, fmt.Sprintf(s.texts.CashSelected, orderID))

	notice := fmt.Sprintf("💵 *Cash payment selected*\n\nOrder *#%d* will be paid in class.", orderID)
	if err := s.telegram.SendMarkdownMessage(s.cfg.AdminID, notice); err != nil {
		s.logger.Warn("admin notify failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (s *Service) handleUploadProof(cb models.CallbackQuery, orderID int64, sess session.Session) {
	sess.AwaitingProofFor = orderID
	s.putSession(cb.UserID, sess)
	s.replyMarkdown(cb.ChatID, fmt.Sprintf(s.texts.AskProof, orderID))
}

// handleProofPhoto attaches an incoming screenshot to an order. An
// armed marker wins; without one the photo goes to the user's latest
// unresolved order when auto attach is enabled.
func (s *Service) handleProofPhoto(userID int64, msg models.Message, sess session.Session) {
	orderID := sess.AwaitingProofFor
	if orderID == 0 && s.cfg.AutoAttachProof {
		latest, err := s.orders.LatestUnresolved(userID)
		switch {
		case err == nil:
			orderID = latest.OrderID
		case errors.Is(err, database.ErrOrderNotFound):
		default:
			s.logger.Error("latest order lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
	if orderID == 0 {
		s.reply(userID, s.texts.ProofNoOrder)
		return
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		s.logger.Error("order lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		s.reply(userID, s.texts.ErrorReply)
		return
	}
	// A screenshot without a chosen method means the buyer paid by
	// bank transfer outside the offered buttons.
	method := order.PaymentMethod
	if method == "" {
		method = models.PaymentBankTransfer
	}

	if err := s.orders.UpdatePayment(orderID, method, msg.PhotoFileID); err != nil {
		s.logger.Error("proof save failed", zap.Int64("order_id", orderID), zap.Error(err))
		s.reply(userID, s.texts.ErrorReply)
		return
	}

	sess.AwaitingProofFor = 0
	s.putSession(userID, sess)

	s.replyMarkdown(userID, fmt.Sprintf(s.texts.ProofReceived, orderID))
	s.forwardProofToAdmin(orderID, order, msg)
}

// forwardProofToAdmin is best effort: the proof is already persisted,
// the admin can always find it from the order view.
func (s *Service) forwardProofToAdmin(orderID int64, order models.Order, msg models.Message) {
	login := msg.Username
	if login == "" {
		login = "no username"
	}
	caption := fmt.Sprintf(`📸 *Payment proof for order #%d*

%s x%d - %s
👤 %s (@%s)
👥 %s | 📞 %s`,
		orderID,
		order.ProductName, order.Quantity, utils.Money(order.TotalPrice),
		order.BuyerName, login,
		order.BuyerGroup, order.BuyerPhone)

	keyboard := proofReviewKeyboard(orderID)
	if err := s.telegram.SendPhotoByFileID(s.cfg.AdminID, msg.PhotoFileID, caption, &keyboard); err != nil {
		s.logger.Warn("proof forward failed", zap.Int64("order_id", orderID), zap.Error(err))
	}
}
