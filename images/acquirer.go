// Package images acquires a placeholder cover image for a post title:
// build the placeholder URL, fetch the bytes, check they decode as an
// image, and upload them to the content store under a unique filename.
// Every failure here is absorbed; a post without a cover image is better
// than no post.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"snippet-bot/config"
	"snippet-bot/httpclient"
	"snippet-bot/logger"
)

const maxImageBytes = 8 << 20

// Uploader is the slice of the content store the acquirer needs.
type Uploader interface {
	UploadImageAsset(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type Acquirer struct {
	httpClient *http.Client
	uploader   Uploader
	baseURL    string
}

func New(cfg config.ImagesConfig, uploader Uploader) *Acquirer {
	return &Acquirer{
		httpClient: httpclient.NewDefault(),
		uploader:   uploader,
		baseURL:    cfg.PlaceholderBaseURL,
	}
}

// PlaceholderURL builds the deterministic placeholder-image URL for title.
func (a *Acquirer) PlaceholderURL(title string) string {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return a.baseURL
	}
	q := u.Query()
	q.Set("text", title)
	u.RawQuery = q.Encode()
	return u.String()
}

// Acquire returns the uploaded asset's identifier, or "" when any stage
// failed. Errors are logged, never propagated.
func (a *Acquirer) Acquire(ctx context.Context, title string) string {
	data, contentType, err := a.fetch(ctx, a.PlaceholderURL(title))
	if err != nil {
		logger.Log.Warnf("image fetch failed, continuing without cover image: %v", err)
		return ""
	}

	filename := uuid.NewString() + ".png"
	assetID, err := a.uploader.UploadImageAsset(ctx, filename, contentType, data)
	if err != nil {
		logger.Log.Warnf("image upload failed, continuing without cover image: %v", err)
		return ""
	}
	return assetID
}

func (a *Acquirer) fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code %d when fetching image", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", err
	}

	// reject bodies that are not actually an image (error pages etc.)
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, "", fmt.Errorf("response is not a decodable image: %w", err)
	}

	return data, http.DetectContentType(data), nil
}
