package bot

import (
	"bookshop-bot/internal/database"
	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramClient is the outbound transport surface the bot needs.
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendMarkdownMessage(chatID int64, text string) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error
	SendMessageWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	SendPhotoBytes(chatID int64, name string, data []byte, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	SendPhotoByFileID(chatID int64, fileID string, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	SendDocument(chatID int64, path string, caption string) error
}

// UserStore is the persistence surface for users.
type UserStore interface {
	Upsert(user models.User) error
	UpdateContact(userID int64, groupName, phone string) error
	GetByID(userID int64) (models.User, error)
	Count(search string) (int, error)
	ListPaginated(page, pageSize int, search string) ([]models.User, error)
	ExportAll() ([]models.User, error)
}

// OrderStore is the persistence surface for orders and statistics.
type OrderStore interface {
	Create(userID int64, productName string, quantity int, totalPrice float64) (int64, error)
	UpdatePayment(orderID int64, method, proof string) error
	UpdateStatus(orderID int64, status models.OrderStatus, note string) (int64, error)
	SetNote(orderID int64, note string) error
	GetByID(orderID int64) (models.Order, error)
	Count(filter database.OrderFilter) (int, error)
	ListPaginated(filter database.OrderFilter, page, pageSize int) ([]models.Order, error)
	ListByUser(userID int64) ([]models.Order, error)
	LatestUnresolved(userID int64) (models.Order, error)
	Export(filter database.OrderFilter) ([]models.Order, error)
	Statistics() (models.Statistics, error)
}

// QRProvider fetches the payment QR artifact.
type QRProvider interface {
	Fetch() ([]byte, error)
}

// Config is the bot-level runtime configuration, injected so tests can
// run with fakes and a fixed admin identity.
type Config struct {
	AdminID             int64
	Developer           string
	KHQRURL             string
	ABAPayURL           string
	OrdersPerPage       int
	UsersPerPage        int
	ConfirmCancelButton bool
	AutoAttachProof     bool
}

// Service drives the user-facing side: the order conversation, payment
// selection, proof submission and order tracking. Admin traffic is
// delegated to the console.
type Service struct {
	telegram TelegramClient
	logger   *zap.Logger
	users    UserStore
	orders   OrderStore
	sessions session.Store
	qr       QRProvider
	console  *AdminConsole
	cfg      Config
	texts    *Texts
}

func NewService(
	telegram TelegramClient,
	logger *zap.Logger,
	users UserStore,
	orders OrderStore,
	sessions session.Store,
	qr QRProvider,
	console *AdminConsole,
	cfg Config,
	texts *Texts,
) *Service {
	return &Service{
		telegram: telegram,
		logger:   logger,
		users:    users,
		orders:   orders,
		sessions: sessions,
		qr:       qr,
		console:  console,
		cfg:      cfg,
		texts:    texts,
	}
}

// AdminConsole drives the management side: filtered and paginated order
// and user views, statistics, exports and single-order actions.
type AdminConsole struct {
	telegram TelegramClient
	logger   *zap.Logger
	users    UserStore
	orders   OrderStore
	sessions session.Store
	cfg      Config
	texts    *Texts
}

func NewAdminConsole(
	telegram TelegramClient,
	logger *zap.Logger,
	users UserStore,
	orders OrderStore,
	sessions session.Store,
	cfg Config,
	texts *Texts,
) *AdminConsole {
	return &AdminConsole{
		telegram: telegram,
		logger:   logger,
		users:    users,
		orders:   orders,
		sessions: sessions,
		cfg:      cfg,
		texts:    texts,
	}
}
