package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"bookshop-bot/internal/database"
	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sentItem is one outbound interaction recorded by the fake transport.
type sentItem struct {
	kind     string // message, markdown, keyboard, inline, edit, photo_bytes, photo_id, document
	chatID   int64
	text     string
	keyboard *tgbotapi.InlineKeyboardMarkup
}

type fakeTelegram struct {
	sent    []sentItem
	failAll bool
}

func (f *fakeTelegram) record(item sentItem) error {
	if f.failAll {
		return fmt.Errorf("transport down")
	}
	f.sent = append(f.sent, item)
	return nil
}

func (f *fakeTelegram) SendMessage(chatID int64, text string) error {
	return f.record(sentItem{kind: "message", chatID: chatID, text: text})
}

func (f *fakeTelegram) SendMarkdownMessage(chatID int64, text string) error {
	return f.record(sentItem{kind: "markdown", chatID: chatID, text: text})
}

func (f *fakeTelegram) SendMessageWithKeyboard(chatID int64, text string, _ tgbotapi.ReplyKeyboardMarkup) error {
	return f.record(sentItem{kind: "keyboard", chatID: chatID, text: text})
}

func (f *fakeTelegram) SendMessageWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	return f.record(sentItem{kind: "inline", chatID: chatID, text: text, keyboard: &keyboard})
}

func (f *fakeTelegram) EditMessage(chatID int64, _ int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	return f.record(sentItem{kind: "edit", chatID: chatID, text: text, keyboard: keyboard})
}

func (f *fakeTelegram) SendPhotoBytes(chatID int64, _ string, _ []byte, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	return f.record(sentItem{kind: "photo_bytes", chatID: chatID, text: caption, keyboard: keyboard})
}

func (f *fakeTelegram) SendPhotoByFileID(chatID int64, fileID, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	return f.record(sentItem{kind: "photo_id", chatID: chatID, text: fileID + "|" + caption, keyboard: keyboard})
}

func (f *fakeTelegram) SendDocument(chatID int64, path, caption string) error {
	return f.record(sentItem{kind: "document", chatID: chatID, text: path})
}

// lastTo returns the most recent item sent to a chat.
func (f *fakeTelegram) lastTo(chatID int64) (sentItem, bool) {
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].chatID == chatID {
			return f.sent[i], true
		}
	}
	return sentItem{}, false
}

func (f *fakeTelegram) textsTo(chatID int64) []string {
	var out []string
	for _, item := range f.sent {
		if item.chatID == chatID {
			out = append(out, item.text)
		}
	}
	return out
}

type fakeUserStore struct {
	users map[int64]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]models.User)}
}

func (f *fakeUserStore) Upsert(user models.User) error {
	existing, ok := f.users[user.UserID]
	if ok {
		existing.Username = user.Username
		existing.FirstName = user.FirstName
		f.users[user.UserID] = existing
		return nil
	}
	user.RegisteredAt = time.Now()
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserStore) UpdateContact(userID int64, groupName, phone string) error {
	u, ok := f.users[userID]
	if !ok {
		return database.ErrUserNotFound
	}
	u.GroupName = groupName
	u.Phone = phone
	f.users[userID] = u
	return nil
}

func (f *fakeUserStore) GetByID(userID int64) (models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return models.User{}, database.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) matching(search string) []models.User {
	var out []models.User
	needle := strings.ToLower(search)
	for _, u := range f.users {
		if search == "" ||
			strings.Contains(strings.ToLower(u.FirstName), needle) ||
			strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.GroupName), needle) ||
			strings.Contains(u.Phone, search) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (f *fakeUserStore) Count(search string) (int, error) {
	return len(f.matching(search)), nil
}

func (f *fakeUserStore) ListPaginated(page, pageSize int, search string) ([]models.User, error) {
	all := f.matching(search)
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeUserStore) ExportAll() ([]models.User, error) {
	return f.matching(""), nil
}

type fakeOrderStore struct {
	orders  map[int64]models.Order
	nextID  int64
	users   *fakeUserStore
	failAll bool
}

func newFakeOrderStore(users *fakeUserStore) *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[int64]models.Order), nextID: 1, users: users}
}

func (f *fakeOrderStore) Create(userID int64, productName string, quantity int, totalPrice float64) (int64, error) {
	if f.failAll {
		return 0, fmt.Errorf("db down")
	}
	id := f.nextID
	f.nextID++

	var buyer models.User
	if f.users != nil {
		buyer = f.users.users[userID]
	}
	f.orders[id] = models.Order{
		OrderID:     id,
		UserID:      userID,
		ProductName: productName,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		Status:      models.OrderStatusPending,
		OrderDate:   time.Now(),
		BuyerName:   buyer.FirstName,
		BuyerGroup:  buyer.GroupName,
		BuyerPhone:  buyer.Phone,
		BuyerLogin:  buyer.Username,
	}

	// Mirror the transactional aggregate bump.
	if f.users != nil {
		if u, ok := f.users.users[userID]; ok {
			u.TotalOrders++
			u.TotalSpent += totalPrice
			f.users.users[userID] = u
		}
	}
	return id, nil
}

func (f *fakeOrderStore) UpdatePayment(orderID int64, method, proof string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return database.ErrOrderNotFound
	}
	o.PaymentMethod = method
	if proof != "" {
		o.PaymentProof = proof
	}
	o.Status = models.OrderStatusAwaitingVerification
	f.orders[orderID] = o
	return nil
}

func (f *fakeOrderStore) UpdateStatus(orderID int64, status models.OrderStatus, note string) (int64, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return 0, database.ErrOrderNotFound
	}
	o.Status = status
	if note != "" {
		o.AdminNotes = note
	}
	f.orders[orderID] = o
	return o.UserID, nil
}

func (f *fakeOrderStore) SetNote(orderID int64, note string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return database.ErrOrderNotFound
	}
	o.AdminNotes = note
	f.orders[orderID] = o
	return nil
}

func (f *fakeOrderStore) GetByID(orderID int64) (models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, database.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderStore) matching(filter database.OrderFilter) []models.Order {
	var out []models.Order
	needle := strings.ToLower(filter.Search)
	cutoff, hasCutoff := filter.Period.Cutoff(time.Now())
	for _, o := range f.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		if hasCutoff && o.OrderDate.Before(cutoff) {
			continue
		}
		if filter.Search != "" {
			id := fmt.Sprintf("%d", o.OrderID)
			if !strings.Contains(id, filter.Search) &&
				!strings.Contains(strings.ToLower(o.BuyerName), needle) &&
				!strings.Contains(strings.ToLower(o.BuyerGroup), needle) &&
				!strings.Contains(strings.ToLower(o.ProductName), needle) {
				continue
			}
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID > out[j].OrderID })
	return out
}

func (f *fakeOrderStore) Count(filter database.OrderFilter) (int, error) {
	return len(f.matching(filter)), nil
}

func (f *fakeOrderStore) ListPaginated(filter database.OrderFilter, page, pageSize int) ([]models.Order, error) {
	all := f.matching(filter)
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeOrderStore) ListByUser(userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID > out[j].OrderID })
	return out, nil
}

func (f *fakeOrderStore) LatestUnresolved(userID int64) (models.Order, error) {
	all, _ := f.ListByUser(userID)
	for _, o := range all {
		if o.Status == models.OrderStatusPending || o.Status == models.OrderStatusAwaitingVerification {
			return o, nil
		}
	}
	return models.Order{}, database.ErrOrderNotFound
}

func (f *fakeOrderStore) Export(filter database.OrderFilter) ([]models.Order, error) {
	return f.matching(filter), nil
}

func (f *fakeOrderStore) Statistics() (models.Statistics, error) {
	stats := models.Statistics{
		StatusCounts: make(map[models.OrderStatus]int),
		TotalUsers:   len(f.users.users),
	}
	for _, o := range f.orders {
		stats.TotalOrders++
		stats.StatusCounts[o.Status]++
		if o.Status == models.OrderStatusCompleted {
			stats.Revenue += o.TotalPrice
		}
	}
	return stats, nil
}

type fakeQR struct {
	data []byte
	err  error
}

func (f *fakeQR) Fetch() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

const (
	testAdminID int64 = 777
	testUserID  int64 = 100
)

type harness struct {
	service  *Service
	console  *AdminConsole
	telegram *fakeTelegram
	users    *fakeUserStore
	orders   *fakeOrderStore
	sessions session.Store
	qr       *fakeQR
}

func newHarness() *harness {
	telegram := &fakeTelegram{}
	users := newFakeUserStore()
	orders := newFakeOrderStore(users)
	sessions := session.NewMemoryStore()
	qr := &fakeQR{data: []byte("qr-bytes")}
	logger := zap.NewNop()
	texts := TextsFor("en")
	cfg := Config{
		AdminID:             testAdminID,
		Developer:           "shop_admin",
		KHQRURL:             "https://example.com/khqr.jpg",
		ABAPayURL:           "https://pay.example.com/aba",
		OrdersPerPage:       10,
		UsersPerPage:        15,
		ConfirmCancelButton: true,
		AutoAttachProof:     true,
	}

	console := NewAdminConsole(telegram, logger, users, orders, sessions, cfg, texts)
	service := NewService(telegram, logger, users, orders, sessions, qr, console, cfg, texts)
	return &harness{
		service:  service,
		console:  console,
		telegram: telegram,
		users:    users,
		orders:   orders,
		sessions: sessions,
		qr:       qr,
	}
}

func (h *harness) text(userID int64, text string) {
	h.service.HandleMessage(models.Message{ChatID: userID, Text: text, Username: "buyer", FullName: "Test Buyer"})
}

func (h *harness) photo(userID int64, fileID string) {
	h.service.HandleMessage(models.Message{ChatID: userID, Username: "buyer", FullName: "Test Buyer", PhotoFileID: fileID})
}

func (h *harness) callback(userID int64, data string) {
	h.service.HandleCallback(models.CallbackQuery{
		ID:        "cb",
		UserID:    userID,
		UserName:  "Test Buyer",
		UserLogin: "buyer",
		MessageID: 42,
		ChatID:    userID,
		Data:      data,
	})
}

func (h *harness) session(userID int64) session.Session {
	sess, _ := h.sessions.Get(userID)
	return sess
}
