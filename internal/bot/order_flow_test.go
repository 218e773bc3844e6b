package bot

import (
	"fmt"
	"strings"
	"testing"

	"bookshop-bot/internal/models"
	"bookshop-bot/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) placeOrder(t *testing.T, productID string, qty int) int64 {
	t.Helper()

	h.text(testUserID, "/start")
	h.text(testUserID, h.service.texts.MenuBuy)
	h.callback(testUserID, "product_"+productID)
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "Civil M3")
	h.text(testUserID, "012345678")
	h.callback(testUserID, fmt.Sprintf("qty_%d", qty))
	h.callback(testUserID, cbConfirmOrder)

	order, err := h.orders.LatestUnresolved(testUserID)
	require.NoError(t, err)
	return order.OrderID
}

func TestOrderFlowHappyPath(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	last, ok := h.telegram.lastTo(testUserID)
	require.True(t, ok)
	assert.Equal(t, "keyboard", last.kind)
	assert.Contains(t, last.text, "Welcome")
	assert.Contains(t, last.text, "Math Book")

	h.text(testUserID, h.service.texts.MenuBuy)
	h.callback(testUserID, "product_math_book")

	sess := h.session(testUserID)
	assert.Equal(t, session.StateAwaitingName, sess.State)
	assert.Equal(t, "Math Book", sess.ProductName)
	assert.InDelta(t, 1.70, sess.ProductPrice, 1e-9)

	h.text(testUserID, "Sok Dara")
	assert.Equal(t, session.StateAwaitingGroup, h.session(testUserID).State)

	h.text(testUserID, "Civil M3")
	assert.Equal(t, session.StateAwaitingPhone, h.session(testUserID).State)

	h.text(testUserID, "012345678")
	assert.Equal(t, session.StateAwaitingQuantity, h.session(testUserID).State)

	user, err := h.users.GetByID(testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Civil M3", user.GroupName)
	assert.Equal(t, "012345678", user.Phone)

	h.callback(testUserID, "qty_3")
	sess = h.session(testUserID)
	assert.Equal(t, session.StateConfirmation, sess.State)
	assert.Equal(t, 3, sess.Quantity)
	assert.InDelta(t, 5.10, sess.Total(), 1e-9)

	h.callback(testUserID, cbConfirmOrder)

	order, err := h.orders.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Math Book", order.ProductName)
	assert.Equal(t, 3, order.Quantity)
	assert.InDelta(t, 5.10, order.TotalPrice, 1e-9)

	// QR photo with caption went to the buyer, notification to the admin.
	var photoSent bool
	for _, item := range h.telegram.sent {
		if item.kind == "photo_bytes" && item.chatID == testUserID {
			photoSent = true
			assert.Contains(t, item.text, "#1")
			assert.Contains(t, item.text, "$5.10")
		}
	}
	assert.True(t, photoSent)

	adminLast, ok := h.telegram.lastTo(testAdminID)
	require.True(t, ok)
	assert.Contains(t, adminLast.text, "New Order #1")
	assert.Contains(t, adminLast.text, "Sok Dara")

	// Flow state is cleared, ready for the next order.
	assert.Equal(t, session.StateIdle, h.session(testUserID).State)
}

func TestOrderFlowSkipPhone(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, "product_computer")
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "A1")
	h.text(testUserID, "/skip")

	sess := h.session(testUserID)
	assert.Equal(t, session.StateAwaitingQuantity, sess.State)
	assert.Equal(t, h.service.texts.PhonePlaceholder, sess.Phone)

	user, err := h.users.GetByID(testUserID)
	require.NoError(t, err)
	assert.Equal(t, h.service.texts.PhonePlaceholder, user.Phone)
}

func TestStaleQuantityButtonDoesNotSkipCollection(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.text(testUserID, h.service.texts.MenuBuy)
	h.callback(testUserID, "product_math_book")
	require.Equal(t, session.StateAwaitingName, h.session(testUserID).State)

	// A quantity button on an old keyboard must not jump past the
	// name, group and phone questions.
	h.callback(testUserID, "qty_3")
	sess := h.session(testUserID)
	assert.Equal(t, session.StateAwaitingName, sess.State)
	assert.Zero(t, sess.Quantity)

	h.callback(testUserID, cbConfirmOrder)
	assert.Empty(t, h.orders.orders)

	// Same for the custom-quantity button.
	h.callback(testUserID, cbQtyCustom)
	assert.Equal(t, session.StateAwaitingName, h.session(testUserID).State)
}

func TestOrderFlowCustomQuantity(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, "product_business")
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "B2")
	h.text(testUserID, "/skip")
	h.callback(testUserID, cbQtyCustom)
	assert.Equal(t, session.StateAwaitingCustomQuantity, h.session(testUserID).State)

	h.text(testUserID, "abc")
	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ErrQuantityNaN, last.text)
	assert.Equal(t, session.StateAwaitingCustomQuantity, h.session(testUserID).State)

	h.text(testUserID, "0")
	last, _ = h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ErrQuantityLow, last.text)

	h.text(testUserID, "51")
	last, _ = h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ErrQuantityHigh, last.text)

	h.text(testUserID, "12")
	sess := h.session(testUserID)
	assert.Equal(t, session.StateConfirmation, sess.State)
	assert.Equal(t, 12, sess.Quantity)
	assert.InDelta(t, 1.99*12, sess.Total(), 1e-9)
}

func TestOrderFlowEditKeepsProduct(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, "product_math_book")
	h.text(testUserID, "Wrong Name")
	h.text(testUserID, "M4")
	h.text(testUserID, "/skip")
	h.callback(testUserID, "qty_2")

	h.callback(testUserID, cbEditOrder)
	sess := h.session(testUserID)
	assert.Equal(t, session.StateAwaitingName, sess.State)
	assert.Equal(t, "Math Book", sess.ProductName)
	assert.Empty(t, sess.Name)
	assert.Zero(t, sess.Quantity)
}

func TestOrderFlowCancel(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, "product_math_book")
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "/cancel")

	sess := h.session(testUserID)
	assert.Equal(t, session.StateIdle, sess.State)
	assert.Empty(t, sess.ProductName)
}

func TestOrderFlowConfirmWithoutState(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, cbConfirmOrder)

	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ErrorReply, last.text)
	assert.Empty(t, h.orders.orders)
}

func TestOrderCreateFailure(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.callback(testUserID, "product_math_book")
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "M3")
	h.text(testUserID, "/skip")
	h.callback(testUserID, "qty_1")

	h.orders.failAll = true
	h.callback(testUserID, cbConfirmOrder)

	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ErrorReply, last.text)
	// Session keeps the confirmation so the buyer can retry.
	assert.Equal(t, session.StateConfirmation, h.session(testUserID).State)
}

func TestOrderFlowQRFallback(t *testing.T) {
	h := newHarness()
	h.qr.err = fmt.Errorf("fetch failed")

	h.placeOrder(t, "math_book", 2)

	var fallback bool
	for _, item := range h.telegram.sent {
		if item.chatID == testUserID && item.kind == "inline" && item.keyboard != nil &&
			strings.Contains(item.text, "KHQR") && strings.Contains(item.text, "#1") {
			fallback = true
		}
	}
	assert.True(t, fallback, "text fallback with payment keyboard expected")
}

func TestUserAggregatesAcrossOrders(t *testing.T) {
	h := newHarness()

	h.placeOrder(t, "math_book", 3)

	h.text(testUserID, h.service.texts.MenuBuy)
	h.callback(testUserID, "product_computer")
	h.text(testUserID, "Sok Dara")
	h.text(testUserID, "M3")
	h.text(testUserID, "/skip")
	h.callback(testUserID, "qty_2")
	h.callback(testUserID, cbConfirmOrder)

	user, err := h.users.GetByID(testUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, user.TotalOrders)
	assert.InDelta(t, 5.10+5.00, user.TotalSpent, 1e-9)
}

func TestTrackOrders(t *testing.T) {
	h := newHarness()

	h.text(testUserID, "/start")
	h.text(testUserID, h.service.texts.MenuTrack)
	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.TrackEmpty, last.text)

	h.placeOrder(t, "math_book", 1)
	h.text(testUserID, h.service.texts.MenuTrack)

	last, _ = h.telegram.lastTo(testUserID)
	assert.Contains(t, last.text, "#1")
	assert.Contains(t, last.text, "Math Book")
	assert.Contains(t, last.text, "$1.70")
}
