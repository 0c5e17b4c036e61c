package contentstore_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippet-bot/contentstore"
)

func TestUploadImageAsset(t *testing.T) {
	var gotPath, gotFilename, gotAuth, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFilename = r.URL.Query().Get("filename")
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		json.NewEncoder(w).Encode(map[string]any{
			"document": map[string]any{"_id": "image-deadbeef-800x400-png"},
		})
	}))
	defer server.Close()

	client := contentstore.NewWithBaseURL(server.URL, "production", "secret-token")

	assetID, err := client.UploadImageAsset(context.Background(), "cover.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)

	assert.Equal(t, "image-deadbeef-800x400-png", assetID)
	assert.Equal(t, "/assets/images/production", gotPath)
	assert.Equal(t, "cover.png", gotFilename)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, gotBody)
}

func TestUploadImageAssetErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := contentstore.NewWithBaseURL(server.URL, "production", "bad-token")

	_, err := client.UploadImageAsset(context.Background(), "cover.png", "image/png", []byte{1})
	assert.ErrorContains(t, err, "status=401")
}

func TestCreateDocument(t *testing.T) {
	var gotPath string
	var gotMutations struct {
		Mutations []struct {
			Create contentstore.PostDocument `json:"create"`
		} `json:"mutations"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotMutations)

		json.NewEncoder(w).Encode(map[string]any{
			"transactionId": "txn-1",
			"results":       []map[string]any{{"id": "post-123"}},
		})
	}))
	defer server.Close()

	client := contentstore.NewWithBaseURL(server.URL, "production", "secret-token")

	doc := contentstore.PostDocument{
		Type:        "post",
		Title:       "reverse snippet 2024-01-01",
		Slug:        contentstore.NewSlug("reverse-snippet-2024-01-01"),
		Author:      contentstore.NewReference("author-1"),
		Categories:  []contentstore.Reference{contentstore.NewReference("category-1")},
		PublishedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Body:        []any{contentstore.TextBlock("hello"), contentstore.NewCodeBlock("javascript", "function f(){}")},
	}

	docID, err := client.CreateDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "post-123", docID)
	assert.Equal(t, "/data/mutate/production", gotPath)
	require.Len(t, gotMutations.Mutations, 1)
	created := gotMutations.Mutations[0].Create
	assert.Equal(t, "post", created.Type)
	assert.Equal(t, "reverse-snippet-2024-01-01", created.Slug.Current)
	assert.Equal(t, "author-1", created.Author.Ref)
}

func TestCreateDocumentEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"transactionId": "txn-1", "results": []any{}})
	}))
	defer server.Close()

	client := contentstore.NewWithBaseURL(server.URL, "production", "secret-token")

	_, err := client.CreateDocument(context.Background(), contentstore.PostDocument{Type: "post"})
	assert.ErrorContains(t, err, "no document id")
}
