// Package session keeps the per-user conversation state as an explicit
// record behind a small store interface, so the bot engine can be tested
// without a live transport and the state can live in redis when the bot
// runs with one.
package session

// State is the position of a user inside the order conversation.
type State string

const (
	StateIdle                   State = "idle"
	StateAwaitingName           State = "awaiting_name"
	StateAwaitingGroup          State = "awaiting_group"
	StateAwaitingPhone          State = "awaiting_phone"
	StateAwaitingQuantity       State = "awaiting_quantity"
	StateAwaitingCustomQuantity State = "awaiting_custom_quantity"
	StateConfirmation           State = "confirmation"
)

// PromptKind tags what free-text input the admin console is waiting for.
// Exactly one prompt can be armed at a time; arming a new one replaces
// the previous one.
type PromptKind string

const (
	PromptNone         PromptKind = ""
	PromptSearchOrders PromptKind = "search_orders"
	PromptSearchUsers  PromptKind = "search_users"
	PromptNoteFor      PromptKind = "note_for"
)

// AdminPrompt is the pending admin input marker. OrderID is set only for
// PromptNoteFor.
type AdminPrompt struct {
	Kind    PromptKind `json:"kind"`
	OrderID int64      `json:"order_id,omitempty"`
}

// Session is one user's conversation record. The zero value is an idle
// session with nothing collected.
type Session struct {
	State State `json:"state"`

	// Product snapshot taken at selection time. Catalog changes after
	// this point must not affect the order.
	ProductID    string  `json:"product_id,omitempty"`
	ProductName  string  `json:"product_name,omitempty"`
	ProductPrice float64 `json:"product_price,omitempty"`
	ProductEmoji string  `json:"product_emoji,omitempty"`

	Name     string `json:"name,omitempty"`
	Group    string `json:"group,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Quantity int    `json:"quantity,omitempty"`

	// AwaitingProofFor is the order id expecting a payment screenshot,
	// 0 when none is armed.
	AwaitingProofFor int64 `json:"awaiting_proof_for,omitempty"`

	AdminPrompt AdminPrompt `json:"admin_prompt,omitempty"`
}

// Total is the frozen order total for the current snapshot and quantity.
func (s *Session) Total() float64 {
	return s.ProductPrice * float64(s.Quantity)
}

// ResetFlow clears the order-flow part of the session, leaving the
// payment and admin markers alone.
func (s *Session) ResetFlow() {
	s.State = StateIdle
	s.ProductID = ""
	s.ProductName = ""
	s.ProductPrice = 0
	s.ProductEmoji = ""
	s.Name = ""
	s.Group = ""
	s.Phone = ""
	s.Quantity = 0
}

// Store persists sessions keyed by user id. Get returns a zero session
// for unknown users.
type Store interface {
	Get(userID int64) (Session, error)
	Put(userID int64, s Session) error
	Delete(userID int64) error
}
