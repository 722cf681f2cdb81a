package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler admits the first admit events of every window, cycling
// afterwards. It keeps high-volume debug lines (update receipts, send
// traces) at a bounded share of the log stream.
type ratioSampler struct {
	mu     sync.Mutex
	admit  int
	window int
	seen   int
}

func newRatioSampler(admit, window int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(admit, window)
	return s
}

// Set reconfigures the ratio. Non-positive values disable sampling, meaning
// every event is admitted.
func (s *ratioSampler) Set(admit, window int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admit <= 0 || window <= 0 {
		s.admit, s.window, s.seen = 0, 0, 0
		return
	}
	if admit > window {
		admit = window
	}
	s.admit = admit
	s.window = window
	s.seen = 0
}

// Allow reports whether the current event falls inside the admitted share
// of its window.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admit <= 0 || s.window <= 0 {
		return true
	}
	s.seen++
	if s.seen > s.window {
		s.seen = 1
	}
	return s.seen <= s.admit
}

// parseRatioSpec reads "n/d" as n-per-d and a bare "n" as 1-per-n.
// Anything unparsable disables sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
