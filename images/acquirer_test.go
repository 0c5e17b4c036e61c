package images_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippet-bot/config"
	"snippet-bot/images"
)

type fakeUploader struct {
	assetID  string
	err      error
	filename string
	data     []byte
}

func (f *fakeUploader) UploadImageAsset(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	f.filename = filename
	f.data = data
	if f.err != nil {
		return "", f.err
	}
	return f.assetID, nil
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestPlaceholderURL(t *testing.T) {
	acquirer := images.New(config.ImagesConfig{PlaceholderBaseURL: "https://placehold.co/800x400.png"}, &fakeUploader{})

	got := acquirer.PlaceholderURL("a snippet 2024-01-01")
	assert.Equal(t, "https://placehold.co/800x400.png?text=a+snippet+2024-01-01", got)

	// deterministic
	assert.Equal(t, got, acquirer.PlaceholderURL("a snippet 2024-01-01"))
}

func TestAcquireUploadsFetchedImage(t *testing.T) {
	img := tinyPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my title", r.URL.Query().Get("text"))
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer server.Close()

	uploader := &fakeUploader{assetID: "image-xyz"}
	acquirer := images.New(config.ImagesConfig{PlaceholderBaseURL: server.URL + "/cover.png"}, uploader)

	assetID := acquirer.Acquire(context.Background(), "my title")

	assert.Equal(t, "image-xyz", assetID)
	assert.Equal(t, img, uploader.data)
	assert.True(t, strings.HasSuffix(uploader.filename, ".png"), "filename %q should end in .png", uploader.filename)
}

func TestAcquireReturnsEmptyOnFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	acquirer := images.New(config.ImagesConfig{PlaceholderBaseURL: server.URL}, &fakeUploader{assetID: "image-xyz"})

	assert.Empty(t, acquirer.Acquire(context.Background(), "my title"))
}

func TestAcquireReturnsEmptyOnNonImageBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not an image</html>"))
	}))
	defer server.Close()

	uploader := &fakeUploader{assetID: "image-xyz"}
	acquirer := images.New(config.ImagesConfig{PlaceholderBaseURL: server.URL}, uploader)

	assert.Empty(t, acquirer.Acquire(context.Background(), "my title"))
	assert.Nil(t, uploader.data, "nothing should reach the uploader")
}

func TestAcquireReturnsEmptyOnUploadError(t *testing.T) {
	img := tinyPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(img)
	}))
	defer server.Close()

	acquirer := images.New(config.ImagesConfig{PlaceholderBaseURL: server.URL}, &fakeUploader{err: errors.New("store down")})

	assert.Empty(t, acquirer.Acquire(context.Background(), "my title"))
}
