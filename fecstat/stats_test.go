package fecstat

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNilStatsIsSafe(t *testing.T) {
	var s *Stats
	s.AddEncode()
	s.AddDecode(3)
	s.AddPivotScan()
	s.AddPivotSwap()
	s.AddMatrixBuildNanos(100)
	s.AddCorruption()
	for _, v := range s.ToSlice() {
		if v != "0" {
			t.Fatalf("nil Stats must snapshot as zeros, got %v", s.ToSlice())
		}
	}
}

func TestHeaderToSliceParity(t *testing.T) {
	var s Stats
	s.AddEncode()
	s.AddDecode(2)
	if len(s.Header()) != len(s.ToSlice()) {
		t.Fatalf("Header has %d columns, ToSlice has %d", len(s.Header()), len(s.ToSlice()))
	}
	snap := s.Copy()
	if snap.Encodes != 1 || snap.Decodes != 1 || snap.PacketsRecovered != 2 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestConcurrentCounters(t *testing.T) {
	var s Stats
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s.AddEncode()
			}
		}()
	}
	wg.Wait()
	if got := s.Copy().Encodes; got != 8000 {
		t.Fatalf("Encodes = %d, want 8000", got)
	}
}

func TestLoggerDisabled(t *testing.T) {
	var s Stats
	done := make(chan struct{})
	defer close(done)

	finished := make(chan struct{})
	go func() {
		Logger(&s, "", 10, done)
		Logger(&s, "stats.csv", 0, done)
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Logger with blank path or zero interval must return immediately")
	}
}

func TestLoggerWritesCSV(t *testing.T) {
	var s Stats
	s.AddEncode()
	path := filepath.Join(t.TempDir(), "stats.csv")

	done := make(chan struct{})
	go Logger(&s, path, 1, done)

	deadline := time.Now().Add(5 * time.Second)
	for {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Logger did not produce a CSV snapshot in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	close(done)
}
