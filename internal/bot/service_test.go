package bot

import (
	"testing"

	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Start drains both channels on one goroutine and returns once both
// are closed, so per-channel arrival order is preserved.
func TestStartDrainsBothChannels(t *testing.T) {
	h := newHarness()

	messages := make(chan models.Message, 2)
	callbacks := make(chan models.CallbackQuery, 1)
	messages <- models.Message{ChatID: testUserID, Text: "/start", Username: "buyer", FullName: "Test Buyer"}
	messages <- models.Message{ChatID: testUserID, Text: h.service.texts.MenuBuy, Username: "buyer", FullName: "Test Buyer"}
	close(messages)
	close(callbacks)

	h.service.Start(messages, callbacks)

	last, ok := h.telegram.lastTo(testUserID)
	require.True(t, ok)
	assert.Equal(t, "inline", last.kind)

	callbacks = make(chan models.CallbackQuery, 1)
	messages = make(chan models.Message)
	callbacks <- models.CallbackQuery{ID: "cb", UserID: testUserID, ChatID: testUserID, MessageID: 42, Data: "product_math_book"}
	close(messages)
	close(callbacks)

	h.service.Start(messages, callbacks)

	sess := h.session(testUserID)
	assert.Equal(t, session.StateAwaitingName, sess.State)
	assert.Equal(t, "Math Book", sess.ProductName)
}
