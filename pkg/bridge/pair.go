package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ErrLinkButton means the bridge refused registration because its physical
// link button has not been pressed in the last 30 seconds.
var ErrLinkButton = errors.New("link button not pressed")

const linkButtonErrorType = 101

// Register requests an application key from the bridge at address. The
// user must press the bridge's link button shortly before calling this.
func Register(ctx context.Context, address string, timeout time.Duration) (string, error) {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	host, _ := os.Hostname()
	if host == "" {
		host = "unknown"
	}
	body, err := json.Marshal(map[string]string{"devicetype": "huemcp#" + host})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/api", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach bridge at %s: %w", address, err)
	}
	defer resp.Body.Close()

	results, err := decodeResults(resp.Body)
	if err != nil {
		return "", err
	}

	for _, r := range results {
		if r.Error != nil && r.Error.Type == linkButtonErrorType {
			return "", ErrLinkButton
		}
		if r.Success != nil {
			if username, ok := r.Success["username"].(string); ok {
				return username, nil
			}
		}
	}
	if err := results.err(); err != nil {
		return "", err
	}

	return "", fmt.Errorf("bridge did not return a username")
}

// RegisterRetry calls Register every two seconds until the link button is
// pressed or the deadline passes. Errors other than ErrLinkButton abort
// immediately.
func RegisterRetry(ctx context.Context, address string, deadline time.Duration) (string, error) {
	if deadline == 0 {
		deadline = 30 * time.Second
	}
	expires := time.Now().Add(deadline)

	for {
		username, err := Register(ctx, address, 0)
		if err == nil {
			return username, nil
		}
		if !errors.Is(err, ErrLinkButton) {
			return "", err
		}
		if time.Now().After(expires) {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}
