package state

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/tlind/huemcp/pkg/bridge"
)

func seedFake() *bridge.Fake {
	f := bridge.NewFake()
	f.SetLight(bridge.Light{ID: 1, Name: "Desk Lamp", State: bridge.LightState{On: true, Reachable: true}})
	f.SetLight(bridge.Light{ID: 2, Name: "Kitchen Ceiling", State: bridge.LightState{On: false, Reachable: true}})
	f.SetLight(bridge.Light{ID: 3, Name: "Desk Strip", State: bridge.LightState{On: false, Reachable: true}})
	return f
}

func TestCache_RefreshAndGet(t *testing.T) {
	ctx := context.Background()
	f := seedFake()
	c := New()

	n, err := c.Refresh(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 lights, got %d", n)
	}

	l, ok := c.Get(1)
	if !ok || l.Name != "Desk Lamp" {
		t.Errorf("unexpected cached record: %+v ok=%v", l, ok)
	}
	if _, ok := c.Get(99); ok {
		t.Error("unknown id should miss")
	}
}

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := seedFake()
	c := New()
	if _, err := c.Refresh(ctx, f); err != nil {
		t.Fatal(err)
	}

	// External change: light 3 removed, light 1 renamed and turned off.
	f.RemoveLight(3)
	f.SetLight(bridge.Light{ID: 1, Name: "Desk Lamp Moved", State: bridge.LightState{On: false, Reachable: true}})

	n, err := c.Refresh(ctx, f)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 lights after refresh, got %d", n)
	}

	if _, ok := c.Get(3); ok {
		t.Error("removed light should be gone after refresh")
	}
	l, _ := c.Get(1)
	if l.Name != "Desk Lamp Moved" || l.State.On {
		t.Errorf("refresh should expose the whole new record, got %+v", l)
	}
}

func TestCache_AllIsACopy(t *testing.T) {
	ctx := context.Background()
	c := New()
	if _, err := c.Refresh(ctx, seedFake()); err != nil {
		t.Fatal(err)
	}

	all := c.All()
	delete(all, 1)

	if _, ok := c.Get(1); !ok {
		t.Error("mutating All()'s result must not affect the cache")
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 lights, got %d", c.Len())
	}
}

func TestCache_FindByName(t *testing.T) {
	ctx := context.Background()
	c := New()
	if _, err := c.Refresh(ctx, seedFake()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		query   string
		wantIDs []int
	}{
		{"desk", []int{1, 3}},
		{"DESK", []int{1, 3}},
		{"ceiling", []int{2}},
		{"garage", []int{}},
	}

	for _, tt := range tests {
		got := c.FindByName(tt.query)
		if len(got) != len(tt.wantIDs) {
			t.Errorf("FindByName(%q) returned %d lights, want %d", tt.query, len(got), len(tt.wantIDs))
			continue
		}
		for i, l := range got {
			if l.ID != tt.wantIDs[i] {
				t.Errorf("FindByName(%q)[%d] = id %d, want %d", tt.query, i, l.ID, tt.wantIDs[i])
			}
		}
	}
}

func TestCache_ConcurrentReadersSeeWholeSnapshots(t *testing.T) {
	ctx := context.Background()

	small := bridge.NewFake()
	small.SetLight(bridge.Light{ID: 1, Name: "Desk Lamp", State: bridge.LightState{On: true, Reachable: true}})
	small.SetLight(bridge.Light{ID: 2, Name: "Kitchen Ceiling", State: bridge.LightState{On: false, Reachable: true}})

	large := seedFake()

	c := New()
	if _, err := c.Refresh(ctx, small); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	errs := make(chan string, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				// Every read must land on one source's snapshot in full:
				// either both lights or all three, never a mix.
				if n := len(c.All()); n != 2 && n != 3 {
					select {
					case errs <- fmt.Sprintf("All() returned %d lights", n):
					default:
					}
					return
				}
				if l, ok := c.Get(1); !ok || l.Name != "Desk Lamp" {
					select {
					case errs <- fmt.Sprintf("Get(1) = %+v ok=%v", l, ok):
					default:
					}
					return
				}
				if n := len(c.FindByName("desk")); n != 1 && n != 2 {
					select {
					case errs <- fmt.Sprintf("FindByName returned %d lights", n):
					default:
					}
					return
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		src := Source(small)
		want := 2
		if i%2 == 0 {
			src = large
			want = 3
		}
		n, err := c.Refresh(ctx, src)
		if err != nil {
			t.Fatal(err)
		}
		if n != want {
			t.Fatalf("refresh %d reported %d lights, want %d", i, n, want)
		}
	}

	close(done)
	wg.Wait()
	select {
	case msg := <-errs:
		t.Errorf("reader observed a torn snapshot: %s", msg)
	default:
	}
}

func TestCache_EmptyBeforeRefresh(t *testing.T) {
	c := New()
	if c.Len() != 0 {
		t.Errorf("fresh cache should be empty, got %d", c.Len())
	}
	if got := c.FindByName("desk"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
