// Package contentstore is a thin client for the structured-content
// database's HTTP API. It knows nothing about scheduling or generation;
// it uploads image assets and creates documents, passing the configured
// write token as a bearer credential.
package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"snippet-bot/config"
	"snippet-bot/httpclient"
)

type Client struct {
	base    *httpclient.BaseClient
	dataset string
	token   string
}

// New builds a client against https://{projectID}.{apiHost}/{apiVersion}.
func New(cfg config.ContentStoreConfig) *Client {
	baseURL := fmt.Sprintf("https://%s.%s/%s", cfg.ProjectID, cfg.APIHost, cfg.APIVersion)
	return NewWithBaseURL(baseURL, cfg.Dataset, cfg.Token)
}

// NewWithBaseURL is used by tests to point the client at a local server.
func NewWithBaseURL(baseURL, dataset, token string) *Client {
	return &Client{
		base:    httpclient.NewBaseClient(baseURL),
		dataset: dataset,
		token:   token,
	}
}

type assetResponse struct {
	Document struct {
		ID string `json:"_id"`
	} `json:"document"`
}

// UploadImageAsset uploads raw image bytes under the given filename and
// returns the store's opaque asset identifier.
func (c *Client) UploadImageAsset(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	q := url.Values{}
	q.Set("filename", filename)

	relPath := fmt.Sprintf("/assets/images/%s", c.dataset)
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, q, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("content-store UploadImageAsset: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Document.ID == "" {
		return "", fmt.Errorf("content-store UploadImageAsset: response carried no asset id")
	}
	return out.Document.ID, nil
}

type mutateRequest struct {
	Mutations []mutation `json:"mutations"`
}

type mutation struct {
	Create any `json:"create"`
}

type mutateResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID string `json:"id"`
	} `json:"results"`
}

// CreateDocument persists doc through the store's mutation endpoint and
// returns the created document's identifier.
func (c *Client) CreateDocument(ctx context.Context, doc any) (string, error) {
	buf, err := json.Marshal(mutateRequest{Mutations: []mutation{{Create: doc}}})
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("returnIds", "true")

	relPath := fmt.Sprintf("/data/mutate/%s", c.dataset)
	req, err := c.base.NewRequest(ctx, http.MethodPost, relPath, q, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("content-store CreateDocument: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out mutateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", fmt.Errorf("content-store CreateDocument: response carried no document id")
	}
	return out.Results[0].ID, nil
}
