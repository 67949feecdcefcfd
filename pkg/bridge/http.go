package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient implements Client against the Hue bridge's v1 REST API.
type HTTPClient struct {
	address    string
	username   string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the bridge at address (host or
// host:port) authenticated as username.
func NewHTTPClient(address, username string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &HTTPClient{
		address:  address,
		username: username,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Address returns the bridge address.
func (c *HTTPClient) Address() string {
	return c.address
}

func (c *HTTPClient) url(path string) string {
	return fmt.Sprintf("http://%s/api/%s/%s", c.address, c.username, path)
}

func (c *HTTPClient) request(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bridge returned status %d: %s", resp.StatusCode, payload)
	}

	return resp, nil
}

// Ping checks connectivity and credentials via the config endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.request(ctx, http.MethodGet, "config", nil)
	if err != nil {
		return fmt.Errorf("failed to reach bridge at %s: %w", c.address, err)
	}
	resp.Body.Close()
	return nil
}

// Lights fetches all lights. The v1 API keys them by decimal string id.
func (c *HTTPClient) Lights(ctx context.Context) (map[int]Light, error) {
	resp, err := c.request(ctx, http.MethodGet, "lights", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]Light
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode lights: %w", err)
	}

	lights := make(map[int]Light, len(raw))
	for key, light := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("unexpected light id %q: %w", key, err)
		}
		light.ID = id
		lights[id] = light
	}

	return lights, nil
}

// Groups fetches all groups.
func (c *HTTPClient) Groups(ctx context.Context) (map[int]Group, error) {
	resp, err := c.request(ctx, http.MethodGet, "groups", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]Group
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}

	groups := make(map[int]Group, len(raw))
	for key, group := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("unexpected group id %q: %w", key, err)
		}
		group.ID = id
		groups[id] = group
	}

	return groups, nil
}

// Scenes fetches all scenes. Scene ids stay strings.
func (c *HTTPClient) Scenes(ctx context.Context) (map[string]Scene, error) {
	resp, err := c.request(ctx, http.MethodGet, "scenes", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw map[string]Scene
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode scenes: %w", err)
	}

	for id, scene := range raw {
		scene.ID = id
		raw[id] = scene
	}

	return raw, nil
}

// SetLightState writes one state parameter on a light.
func (c *HTTPClient) SetLightState(ctx context.Context, id int, key string, value any) error {
	path := fmt.Sprintf("lights/%d/state", id)
	if err := c.put(ctx, path, map[string]any{key: value}); err != nil {
		return err
	}

	log.Debug().Int("light", id).Str("key", key).Interface("value", value).Msg("Light state written")
	return nil
}

// SetGroupState writes one action parameter on a group.
func (c *HTTPClient) SetGroupState(ctx context.Context, id int, key string, value any) error {
	path := fmt.Sprintf("groups/%d/action", id)
	if err := c.put(ctx, path, map[string]any{key: value}); err != nil {
		return err
	}

	log.Debug().Int("group", id).Str("key", key).Interface("value", value).Msg("Group action written")
	return nil
}

func (c *HTTPClient) put(ctx context.Context, path string, body any) error {
	resp, err := c.request(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	results, err := decodeResults(resp.Body)
	if err != nil {
		return err
	}
	return results.err()
}

// CreateGroup creates a group and parses the assigned id out of the
// bridge's creation acknowledgment.
func (c *HTTPClient) CreateGroup(ctx context.Context, name string, lightIDs []int) (int, error) {
	body := map[string]any{
		"name":   name,
		"lights": IDList(lightIDs),
	}

	resp, err := c.request(ctx, http.MethodPost, "groups", body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	results, err := decodeResults(resp.Body)
	if err != nil {
		return 0, err
	}
	if err := results.err(); err != nil {
		return 0, err
	}

	for _, r := range results {
		if raw, ok := r.Success["id"]; ok {
			return parseGroupID(raw)
		}
	}

	return 0, fmt.Errorf("bridge acknowledgment did not contain a group id")
}

// parseGroupID handles both the bare id ("1") and the resource path form
// ("/groups/1") the bridge has used across firmware versions.
func parseGroupID(raw any) (int, error) {
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected group id %v in acknowledgment", raw)
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unexpected group id %q in acknowledgment: %w", s, err)
	}
	return id, nil
}

// apiResult is one element of the success/error arrays the v1 API answers
// writes with, still inside an HTTP 200.
type apiResult struct {
	Success map[string]any `json:"success,omitempty"`
	Error   *apiError      `json:"error,omitempty"`
}

type apiError struct {
	Type        int    `json:"type"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type apiResults []apiResult

func decodeResults(r io.Reader) (apiResults, error) {
	var results apiResults
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode bridge response: %w", err)
	}
	return results, nil
}

// err returns the first error payload, if any.
func (rs apiResults) err() error {
	for _, r := range rs {
		if r.Error != nil {
			return fmt.Errorf("bridge error %d at %s: %s", r.Error.Type, r.Error.Address, r.Error.Description)
		}
	}
	return nil
}
