package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Expo caps senders around 600 notifications per second; stay well under it.
const sendsPerSecond = 100

// Message is one Expo push notification.
type Message struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound,omitempty"`
}

type ticket struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type sendResponse struct {
	Data []ticket `json:"data"`
}

// Client is a thin wrapper over Expo's push REST API. Delivery is best
// effort: Send logs failures and reports them to the caller, but callers are
// expected to ignore the error for anything user-facing.
type Client struct {
	url         string
	accessToken string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

func NewClient(url, accessToken string) *Client {
	return &Client{
		url:         url,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(sendsPerSecond), sendsPerSecond),
	}
}

// Send pushes one notification.
func (c *Client) Send(ctx context.Context, msg Message) error {
	return c.SendBatch(ctx, []Message{msg})
}

// SendBatch pushes up to 100 notifications in one request, Expo's batch cap.
func (c *Client) SendBatch(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) > 100 {
		return fmt.Errorf("expo batch limited to 100 messages, got %d", len(msgs))
	}

	if err := c.limiter.WaitN(ctx, len(msgs)); err != nil {
		return fmt.Errorf("push rate limiter: %w", err)
	}

	jsonData, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal push messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call expo push api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read push response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push api returned status %d: %s", resp.StatusCode, string(body))
	}

	var sr sendResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return fmt.Errorf("failed to unmarshal push response: %w", err)
	}

	for i, t := range sr.Data {
		if t.Status != "ok" {
			log.Printf("push: ticket %d not ok (to=%s): %s", i, msgs[i].To, t.Message)
		}
	}
	return nil
}
