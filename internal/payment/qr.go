// Package payment fetches the KHQR payment image. The fetch is bounded
// by a timeout; callers fall back to a text-only instruction variant on
// any failure so an already-committed order is never lost.
package payment

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type QRFetcher struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

func NewQRFetcher(url string, timeout time.Duration, logger *zap.Logger) *QRFetcher {
	return &QRFetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch downloads the QR image. Errors are returned, not fatal: the
// caller degrades to the text fallback.
func (f *QRFetcher) Fetch() ([]byte, error) {
	resp, err := f.client.Get(f.url)
	if err != nil {
		f.logger.Error("failed to fetch KHQR image", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Error("unexpected status fetching KHQR image",
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("fetch KHQR image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		f.logger.Error("failed to read KHQR image body", zap.Error(err))
		return nil, err
	}
	return data, nil
}
