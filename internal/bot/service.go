package bot

import (
	"strings"

	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"

	"go.uber.org/zap"
)

// Start consumes the update channels until both are closed. A single
// loop drains both so a user's text and button taps never race each
// other on the session record.
func (s *Service) Start(messages <-chan models.Message, callbacks <-chan models.CallbackQuery) {
	for messages != nil || callbacks != nil {
		select {
		case msg, ok := <-messages:
			if !ok {
				messages = nil
				continue
			}
			s.HandleMessage(msg)
		case cb, ok := <-callbacks:
			if !ok {
				callbacks = nil
				continue
			}
			s.HandleCallback(cb)
		}
	}
}

func (s *Service) HandleMessage(msg models.Message) {
	userID := msg.ChatID
	isAdmin := userID == s.cfg.AdminID

	sess, err := s.sessions.Get(userID)
	if err != nil {
		s.logger.Error("session load failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	if msg.PhotoFileID != "" {
		s.handleProofPhoto(userID, msg, sess)
		return
	}

	switch msg.Text {
	case "/start":
		s.handleStart(userID, msg)
		return
	case "/cancel":
		s.handleCancel(userID, sess)
		return
	case "/help":
		s.sendHelp(userID)
		return
	case "/admin":
		if isAdmin {
			s.console.OpenPanel(userID)
		} else {
			s.reply(userID, s.texts.AccessDenied)
		}
		return
	}

	// A pending admin prompt swallows the next free-text message.
	if isAdmin && sess.AdminPrompt.Kind != session.PromptNone {
		s.console.ConsumePrompt(userID, msg.Text, sess)
		return
	}

	if sess.State != session.StateIdle {
		s.handleFlowInput(userID, msg.Text, sess)
		return
	}

	switch msg.Text {
	case s.texts.MenuBuy:
		s.sendProductChoice(userID)
	case s.texts.MenuTrack:
		s.sendTrackOrders(userID)
	case s.texts.MenuHelp:
		s.sendHelp(userID)
	case s.texts.MenuAbout:
		s.sendAbout(userID)
	case s.texts.MenuAdmin:
		if isAdmin {
			s.console.OpenPanel(userID)
		} else {
			s.reply(userID, s.texts.AccessDenied)
		}
	default:
		if isAdmin && s.console.HandleButton(userID, msg.Text) {
			return
		}
		if sess.AwaitingProofFor != 0 {
			s.reply(userID, s.texts.ProofNeedImg)
			return
		}
		s.reply(userID, s.texts.DefaultReply)
	}
}

func (s *Service) HandleCallback(cb models.CallbackQuery) {
	data := cb.Data

	if isAdminCallback(data) {
		if cb.UserID != s.cfg.AdminID {
			s.reply(cb.ChatID, s.texts.AccessDenied)
			return
		}
		s.console.HandleCallback(cb)
		return
	}

	sess, err := s.sessions.Get(cb.UserID)
	if err != nil {
		s.logger.Error("session load failed", zap.Int64("user_id", cb.UserID), zap.Error(err))
	}

	switch {
	case data == cbNoop:
	case data == cbChooseProduct:
		s.sendProductChoice(cb.ChatID)
	case data == cbViewAllPrices:
		s.showAllPrices(cb)
	case data == cbBackToMain:
		s.backToMain(cb, sess)
	case data == cbBackToProducts:
		s.backToProducts(cb, sess)
	case strings.HasPrefix(data, "product_"):
		s.handleProductChosen(cb, strings.TrimPrefix(data, "product_"), sess)
	case data == cbQtyCustom:
		s.askCustomQuantity(cb, sess)
	case strings.HasPrefix(data, "qty_"):
		s.handleQuantityButton(cb, strings.TrimPrefix(data, "qty_"), sess)
	case data == cbConfirmOrder:
		s.handleConfirmOrder(cb, sess)
	case data == cbEditOrder:
		s.handleEditOrder(cb, sess)
	case data == cbCancelOrder:
		s.handleCancelOrder(cb, sess)
	default:
		if orderID, ok := parseInt64Suffix(data, "pay_khqr_"); ok {
			s.handlePayKHQR(cb, orderID, sess)
			return
		}
		if orderID, ok := parseInt64Suffix(data, "pay_cash_"); ok {
			s.handlePayCash(cb, orderID, sess)
			return
		}
		if orderID, ok := parseInt64Suffix(data, "upload_proof_"); ok {
			s.handleUploadProof(cb, orderID, sess)
			return
		}
		s.logger.Warn("unknown callback", zap.String("data", data), zap.Int64("user_id", cb.UserID))
	}
}

// isAdminCallback reports whether the callback belongs to the admin
// console. These are rejected for everyone but the configured admin
// before any handler runs.
func isAdminCallback(data string) bool {
	return strings.HasPrefix(data, "admin_") ||
		strings.HasPrefix(data, "filter_") ||
		strings.HasPrefix(data, "export_")
}

func (s *Service) handleStart(userID int64, msg models.Message) {
	user := models.User{
		UserID:    userID,
		Username:  msg.Username,
		FirstName: msg.FullName,
	}
	if err := s.users.Upsert(user); err != nil {
		s.logger.Error("user upsert failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	if sess, err := s.sessions.Get(userID); err == nil && sess.State != session.StateIdle {
		sess.ResetFlow()
		s.putSession(userID, sess)
	}

	s.sendWelcome(userID)
}

func (s *Service) handleCancel(userID int64, sess session.Session) {
	sess.ResetFlow()
	sess.AwaitingProofFor = 0
	sess.AdminPrompt = session.AdminPrompt{}
	s.putSession(userID, sess)

	if err := s.telegram.SendMarkdownMessage(userID, s.texts.Cancelled); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", userID), zap.Error(err))
	}
	s.sendMainMenu(userID, s.texts.BackToMain)
}

func (s *Service) sendWelcome(userID int64) {
	text := formatWelcome(s.texts)
	keyboard := mainMenuKeyboard(s.texts, userID == s.cfg.AdminID)
	if err := s.telegram.SendMessageWithKeyboard(userID, text, keyboard); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", userID), zap.Error(err))
	}
}

func (s *Service) sendMainMenu(userID int64, text string) {
	keyboard := mainMenuKeyboard(s.texts, userID == s.cfg.AdminID)
	if err := s.telegram.SendMessageWithKeyboard(userID, text, keyboard); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", userID), zap.Error(err))
	}
}

func (s *Service) sendHelp(userID int64) {
	s.replyMarkdown(userID, formatHelp(s.texts, s.cfg.Developer))
}

func (s *Service) sendAbout(userID int64) {
	s.replyMarkdown(userID, formatAbout(s.texts, s.cfg.Developer))
}

func (s *Service) reply(chatID int64, text string) {
	if err := s.telegram.SendMessage(chatID, text); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (s *Service) replyMarkdown(chatID int64, text string) {
	if err := s.telegram.SendMarkdownMessage(chatID, text); err != nil {
		s.logger.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (s *Service) putSession(userID int64, sess session.Session) {
	if err := s.sessions.Put(userID, sess); err != nil {
		s.logger.Error("session save failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}
