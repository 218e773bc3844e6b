package bot

import (
	"fmt"
	"testing"

	"bookshop-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayKHQR(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "math_book", 2)

	h.callback(testUserID, fmt.Sprintf("pay_khqr_%d", orderID))

	order, err := h.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentKHQR, order.PaymentMethod)
	assert.Equal(t, models.OrderStatusAwaitingVerification, order.Status)

	// Picking a method does not arm the proof marker; only the upload
	// button does.
	assert.Zero(t, h.session(testUserID).AwaitingProofFor)

	// Selection notice plus the QR re-send.
	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, "photo_bytes", last.kind)
	assert.Contains(t, last.text, fmt.Sprintf("#%d", orderID))
}

func TestPayKHQRFetchFailure(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "math_book", 2)

	h.qr.err = fmt.Errorf("fetch failed")
	h.callback(testUserID, fmt.Sprintf("pay_khqr_%d", orderID))

	order, err := h.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentKHQR, order.PaymentMethod)

	// Instead of the QR photo the buyer gets the text variant with
	// both payment URLs.
	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, "markdown", last.kind)
	assert.Contains(t, last.text, "https://example.com/khqr.jpg")
	assert.Contains(t, last.text, "https://pay.example.com/aba")
	assert.Contains(t, last.text, fmt.Sprintf("#%d", orderID))
}

func TestPayCash(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "computer", 1)

	h.callback(testUserID, fmt.Sprintf("pay_cash_%d", orderID))

	order, err := h.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)

	last, _ := h.telegram.lastTo(testUserID)
	assert.Contains(t, last.text, "Pay at Class")

	adminLast, _ := h.telegram.lastTo(testAdminID)
	assert.Contains(t, adminLast.text, "Cash payment")
}

func TestUploadProofThenPhoto(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "math_book", 1)

	h.callback(testUserID, fmt.Sprintf("upload_proof_%d", orderID))
	assert.Equal(t, orderID, h.session(testUserID).AwaitingProofFor)

	h.photo(testUserID, "file-abc")

	order, err := h.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, "file-abc", order.PaymentProof)
	assert.Equal(t, models.PaymentBankTransfer, order.PaymentMethod)
	assert.Equal(t, models.OrderStatusAwaitingVerification, order.Status)

	// Marker disarmed, buyer acknowledged, admin got the photo with
	// review controls.
	assert.Zero(t, h.session(testUserID).AwaitingProofFor)

	var forwarded bool
	for _, item := range h.telegram.sent {
		if item.kind == "photo_id" && item.chatID == testAdminID {
			forwarded = true
			assert.NotNil(t, item.keyboard)
		}
	}
	assert.True(t, forwarded)
}

func TestAutoAttachProof(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "math_book", 1)

	// No upload_proof tap. The photo still lands on the open order.
	h.photo(testUserID, "file-auto")

	order, err := h.orders.GetByID(orderID)
	require.NoError(t, err)
	assert.Equal(t, "file-auto", order.PaymentProof)
}

func TestAutoAttachDisabled(t *testing.T) {
	h := newHarness()
	h.service.cfg.AutoAttachProof = false
	h.placeOrder(t, "math_book", 1)

	h.photo(testUserID, "file-auto")

	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ProofNoOrder, last.text)
}

func TestProofWithoutOrder(t *testing.T) {
	h := newHarness()
	h.text(testUserID, "/start")

	h.photo(testUserID, "file-x")

	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ProofNoOrder, last.text)
}

func TestProofNeedsImage(t *testing.T) {
	h := newHarness()
	orderID := h.placeOrder(t, "math_book", 1)

	h.callback(testUserID, fmt.Sprintf("upload_proof_%d", orderID))
	h.text(testUserID, "here is my payment")

	last, _ := h.telegram.lastTo(testUserID)
	assert.Equal(t, h.service.texts.ProofNeedImg, last.text)
	// Marker stays armed until an actual image arrives.
	assert.Equal(t, orderID, h.session(testUserID).AwaitingProofFor)
}
