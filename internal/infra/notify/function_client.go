package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FunctionClient chama a função serverless que repassa a mensagem ao
// provedor de SMS/WhatsApp.
type FunctionClient struct {
	URL    string
	APIKey string
	Client *http.Client
}

type sendRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type sendResponse struct {
	SID   string `json:"sid"`
	Error string `json:"error"`
}

func NewFunctionClient(url, apiKey string) *FunctionClient {
	return &FunctionClient{
		URL:    url,
		APIKey: apiKey,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FunctionClient) Send(ctx context.Context, to, body string) (string, error) {
	payload, err := json.Marshal(sendRequest{To: to, Body: body})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return "", fmt.Errorf("notify function: invalid response (status %d): %w", resp.StatusCode, err)
		}
	}

	if resp.StatusCode >= 300 || out.Error != "" {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("notify function failed with status %d: %s", resp.StatusCode, msg)
	}

	return out.SID, nil
}
