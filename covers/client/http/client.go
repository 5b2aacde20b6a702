package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
)

// CoverClient builds Open Library cover URLs and checks whether a cover exists.
type CoverClient struct {
	url    string
	client *resty.Client
	logger *zap.Logger
}

func NewClient(c *http.Client, url string, logger *zap.Logger) CoverClient {
	return CoverClient{
		url:    strings.TrimRight(url, "/"),
		client: resty.NewWithClient(c),
		logger: logger.With(zap.String("caller", "CoverClient")),
	}
}

// URL returns the cover image URL for isbn, or "" when there is no isbn.
func (cc CoverClient) URL(isbn string, size Size) string {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return ""
	}
	return fmt.Sprintf("%s/b/isbn/%s-%s.jpg", cc.url, isbn, size)
}

// Exists probes the cover with a HEAD request. A non-200 answer is reported
// as false; only transport failures are errors.
func (cc CoverClient) Exists(ctx context.Context, coverURL string) (bool, error) {
	logger := cc.logger.With(zap.String("method", "Exists"))

	start := time.Now()
	resp, err := cc.client.R().SetContext(ctx).Head(coverURL)
	logger.Debug("finish probe", zap.Duration("duration", time.Since(start)))
	if err != nil {
		return false, fmt.Errorf("send Head request: %w", err)
	}

	return resp.StatusCode() == http.StatusOK, nil
}
