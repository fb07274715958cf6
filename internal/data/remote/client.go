package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the remote record store. Every request carries the
// configured API key in the Authorization header; responses hold either a
// single JSON object or an array of them, and non-success statuses carry a
// human-readable message in the body.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log.With(zap.String("component", "remote")),
	}
}

// do executes one request and returns the response documents. A 2xx
// response with an empty body yields no documents and no error.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	success := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated
	if !success {
		c.log.Warn("Record store rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, extractMessage(data), resp.StatusCode)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return decodeDocuments(data)
}

// decodeDocuments handles both array and single-object response bodies.
func decodeDocuments(data []byte) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}

	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	return []json.RawMessage{doc}, nil
}

// extractMessage pulls the error message out of a failure body. The store
// reports either a string or a list of strings under "message".
func extractMessage(data []byte) string {
	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch m := body.Message.(type) {
		case string:
			if m != "" {
				return m
			}
		case []any:
			if len(m) > 0 {
				if s, ok := m[0].(string); ok {
					return s
				}
			}
		}
	}
	return "request failed"
}

func (c *Client) list(ctx context.Context, path string) ([]json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	docs, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("GET %s: empty response", path)
	}
	return docs[0], nil
}

func (c *Client) create(ctx context.Context, path string, body any) (json.RawMessage, error) {
	docs, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("POST %s: empty response", path)
	}
	return docs[0], nil
}

func (c *Client) replace(ctx context.Context, path string, body any) error {
	_, err := c.do(ctx, http.MethodPatch, path, body)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}
