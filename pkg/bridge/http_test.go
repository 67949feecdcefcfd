package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(strings.TrimPrefix(srv.URL, "http://"), "testuser", time.Second)
}

func TestHTTPClient_Lights(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/testuser/lights" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"1": {"name": "Desk", "type": "Extended color light",
			      "state": {"on": true, "reachable": true, "bri": 200,
			                "xy": [0.4, 0.4], "ct": 300, "colormode": "xy"}},
			"2": {"name": "Hallway", "type": "Dimmable light",
			      "state": {"on": false, "reachable": true, "bri": 100}}
		}`))
	})

	lights, err := c.Lights(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(lights) != 2 {
		t.Fatalf("expected 2 lights, got %d", len(lights))
	}

	desk := lights[1]
	if desk.ID != 1 || desk.Name != "Desk" {
		t.Errorf("unexpected light record: %+v", desk)
	}
	if !desk.SupportsColor() || !desk.SupportsColorTemp() {
		t.Errorf("desk should be color and ct capable: %+v", desk.State)
	}
	if desk.State.XY.X != 0.4 {
		t.Errorf("xy not decoded from array form: %+v", desk.State.XY)
	}

	hallway := lights[2]
	if hallway.SupportsColor() || hallway.SupportsColorTemp() {
		t.Errorf("hallway should be dimmable only: %+v", hallway.State)
	}
	if hallway.State.Bri == nil || *hallway.State.Bri != 100 {
		t.Errorf("brightness not decoded: %+v", hallway.State)
	}
}

func TestHTTPClient_SetLightState(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(`[{"success":{"/lights/3/state/on":true}}]`))
	})

	if err := c.SetLightState(context.Background(), 3, KeyOn, true); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/testuser/lights/3/state" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if on, ok := gotBody["on"].(bool); !ok || !on {
		t.Errorf("unexpected body: %v", gotBody)
	}
}

func TestHTTPClient_ErrorPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error":{"type":201,"address":"/lights/3/state/bri","description":"parameter, bri, is not modifiable. Device is set to off."}}]`))
	})

	err := c.SetLightState(context.Background(), 3, KeyBri, 120)
	if err == nil {
		t.Fatal("expected error from bridge error payload")
	}
	if !strings.Contains(err.Error(), "not modifiable") {
		t.Errorf("error should carry the bridge description: %v", err)
	}
}

func TestHTTPClient_CreateGroup(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantID   int
	}{
		{"bare id", `[{"success":{"id":"7"}}]`, 7},
		{"resource path", `[{"success":{"id":"/groups/12"}}]`, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody map[string]any
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
					t.Fatal(err)
				}
				w.Write([]byte(tt.response))
			})

			id, err := c.CreateGroup(context.Background(), "Office", []int{1, 2})
			if err != nil {
				t.Fatal(err)
			}
			if id != tt.wantID {
				t.Errorf("expected group id %d, got %d", tt.wantID, id)
			}

			// The v1 API wants light ids as strings.
			lights, _ := gotBody["lights"].([]any)
			if len(lights) != 2 || lights[0] != "1" {
				t.Errorf("unexpected lights payload: %v", gotBody["lights"])
			}
		})
	}
}

func TestHTTPClient_PingBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
