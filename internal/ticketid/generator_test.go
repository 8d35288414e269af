package ticketid

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

var idPattern = regexp.MustCompile(`^TCK-\d+$`)

func TestGenerator_Format(t *testing.T) {
	gen := NewGenerator()

	id := gen.Next()
	if !idPattern.MatchString(id) {
		t.Fatalf("expected TCK-<integer>, got %q", id)
	}

	ms, err := strconv.ParseInt(strings.TrimPrefix(id, Prefix), 10, 64)
	if err != nil {
		t.Fatalf("numeric part: %v", err)
	}
	now := time.Now().UnixMilli()
	if ms > now || ms < now-time.Minute.Milliseconds() {
		t.Fatalf("numeric part %d not near current time %d", ms, now)
	}
}

func TestGenerator_SameMillisecondStaysUnique(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	gen := &Generator{now: func() time.Time { return frozen }}

	first := gen.Next()
	second := gen.Next()
	if first != "TCK-1700000000000" {
		t.Fatalf("expected TCK-1700000000000, got %q", first)
	}
	if second != "TCK-1700000000001" {
		t.Fatalf("expected the frozen clock to floor at last+1, got %q", second)
	}
}

func TestGenerator_ClockGoingBackwards(t *testing.T) {
	clock := time.UnixMilli(1700000000500)
	gen := &Generator{now: func() time.Time { return clock }}

	first := gen.Next()
	clock = clock.Add(-time.Second)
	second := gen.Next()

	if first != "TCK-1700000000500" {
		t.Fatalf("unexpected first id %q", first)
	}
	if second != "TCK-1700000000501" {
		t.Fatalf("expected floor at last+1 after regression, got %q", second)
	}
}

func TestGenerator_ConcurrentCallsAreDistinct(t *testing.T) {
	gen := NewGenerator()

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]struct{}, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				ids = append(ids, gen.Next())
			}
			mu.Lock()
			for _, id := range ids {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d distinct ids, got %d", workers*perWorker, len(seen))
	}
}
