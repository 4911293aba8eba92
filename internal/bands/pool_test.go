package bands

import (
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestNew_Workers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero", 0, runtime.GOMAXPROCS(0)},
		{"negative", -3, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.workers)
			defer p.Close()
			if p.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.want)
			}
		})
	}
}

// cover runs Rows and reports how often each row was visited.
func cover(p *Pool, height int) ([]int, int) {
	var mu sync.Mutex
	seen := make([]int, height)
	calls := 0
	p.Rows(height, func(y0, y1 int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		for y := y0; y < y1; y++ {
			seen[y]++
		}
	})
	return seen, calls
}

func TestRows_CoversEveryRowOnce(t *testing.T) {
	p := New(4)
	defer p.Close()

	for _, h := range []int{1, 31, 32, 100, 480, 720, 1081} {
		seen, calls := cover(p, h)
		for y, n := range seen {
			if n != 1 {
				t.Fatalf("height %d: row %d visited %d times", h, y, n)
			}
		}
		if h < 2*MinRows && calls != 1 {
			t.Errorf("height %d: %d calls, want 1", h, calls)
		}
		if h >= 4*MinRows && calls != 4 {
			t.Errorf("height %d: %d calls, want 4", h, calls)
		}
	}
}

func TestRows_NilAndClosed(t *testing.T) {
	var nilPool *Pool
	if seen, calls := cover(nilPool, 720); calls != 1 || seen[719] != 1 {
		t.Errorf("nil pool: calls = %d", calls)
	}

	p := New(2)
	p.Close()
	p.Close()
	if _, calls := cover(p, 720); calls != 1 {
		t.Errorf("closed pool: calls = %d, want 1", calls)
	}
}

func TestRows_Empty(t *testing.T) {
	p := New(2)
	defer p.Close()
	called := false
	p.Rows(0, func(int, int) { called = true })
	if called {
		t.Error("fn called for zero height")
	}
}

func TestRows_Concurrent(t *testing.T) {
	p := New(4)
	defer p.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen, _ := cover(p, 720)
			for y, n := range seen {
				if n != 1 {
					t.Errorf("row %d visited %d times", y, n)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestRows_RacingClose(t *testing.T) {
	for range 50 {
		p := New(4)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				seen, _ := cover(p, 720)
				for y, n := range seen {
					if n != 1 {
						t.Errorf("row %d visited %d times", y, n)
						return
					}
				}
			}()
		}
		go p.Close()

		finished := make(chan struct{})
		go func() {
			wg.Wait()
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(5 * time.Second):
			t.Fatal("Rows did not return while the pool was closing")
		}
		p.Close()
	}
}
