package telegram

import (
	"fmt"
	"time"

	"bookshop-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramClient struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramClient(token string) (*TelegramClient, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	return &TelegramClient{bot: bot}, nil
}

func (t *TelegramClient) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramClient) SendMarkdownMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramClient) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramClient) SendMessageWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true
	msg.ReplyMarkup = keyboard
	_, err := t.bot.Send(msg)
	return err
}

// EditMessage rewrites the text and keyboard of a previously sent
// message, which is how paginated admin views are refreshed in place.
func (t *TelegramClient) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	editMsg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	editMsg.ParseMode = "Markdown"
	editMsg.ReplyMarkup = keyboard
	_, err := t.bot.Send(editMsg)
	return err
}

// SendPhotoBytes uploads image bytes with a caption, used for the
// payment QR artifact.
func (t *TelegramClient) SendPhotoBytes(chatID int64, name string, data []byte, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	photo.ParseMode = "Markdown"
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}
	_, err := t.bot.Send(photo)
	return err
}

// SendPhotoByFileID re-sends an already-uploaded photo, used to forward
// a buyer's payment screenshot to the administrator.
func (t *TelegramClient) SendPhotoByFileID(chatID int64, fileID string, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	photo.ParseMode = "Markdown"
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}
	_, err := t.bot.Send(photo)
	return err
}

// SendDocument delivers a local file (the CSV export) with a caption.
func (t *TelegramClient) SendDocument(chatID int64, path string, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	doc.ParseMode = "Markdown"
	_, err := t.bot.Send(doc)
	return err
}

// StartBot begins long polling and fans updates out into one channel of
// messages and one of callback queries. Each is handled to completion by
// the consumer before the next is read.
func (t *TelegramClient) StartBot() (chan models.Message, chan models.CallbackQuery, error) {
	// Long polling requires no webhook to be registered.
	_, err := t.bot.Request(tgbotapi.DeleteWebhookConfig{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete webhook: %w", err)
	}

	time.Sleep(1 * time.Second)

	messages := make(chan models.Message)
	callbacks := make(chan models.CallbackQuery)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		for update := range updates {
			if update.Message != nil {
				fullName := update.Message.From.FirstName
				if update.Message.From.LastName != "" {
					fullName += " " + update.Message.From.LastName
				}

				msg := models.Message{
					ChatID:   update.Message.Chat.ID,
					Text:     update.Message.Text,
					Username: update.Message.From.UserName,
					FullName: fullName,
				}
				if len(update.Message.Photo) > 0 {
					// The last entry is the largest size variant.
					msg.PhotoFileID = update.Message.Photo[len(update.Message.Photo)-1].FileID
				}
				messages <- msg
			}

			if update.CallbackQuery != nil {
				userName := update.CallbackQuery.From.FirstName
				if update.CallbackQuery.From.LastName != "" {
					userName += " " + update.CallbackQuery.From.LastName
				}

				callbacks <- models.CallbackQuery{
					ID:        update.CallbackQuery.ID,
					UserID:    update.CallbackQuery.From.ID,
					UserName:  userName,
					UserLogin: update.CallbackQuery.From.UserName,
					MessageID: update.CallbackQuery.Message.MessageID,
					ChatID:    update.CallbackQuery.Message.Chat.ID,
					Data:      update.CallbackQuery.Data,
				}

				// Clears the loading indicator on the tapped button.
				callbackCfg := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
				t.bot.Request(callbackCfg)
			}
		}
	}()

	return messages, callbacks, nil
}
