package ratelimiter

import (
	"sync"
	"time"
)

// Limiter allows at most Max events per key within a sliding Window.
// Idle keys are dropped by a background sweep. It is safe for concurrent use.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu     sync.Mutex
	events map[string][]time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter of max events per window. A non-positive max yields
// a limiter that allows everything.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		events: make(map[string][]time.Time),
		stop:   make(chan struct{}),
	}
	if max > 0 && window > 0 {
		go l.sweepLoop()
	}
	return l
}

// Allow records an event for key when the limit permits it. When it does not,
// retryAfter is how long until the oldest event in the window expires.
func (l *Limiter) Allow(key string) (allowed bool, retryAfter time.Duration) {
	if l.max <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(l.events[key], now)

	if len(recent) >= l.max {
		l.events[key] = recent
		return false, recent[0].Add(l.window).Sub(now)
	}

	l.events[key] = append(recent, now)
	return true, 0
}

// Reset forgets every event of key
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.events, key)
}

// Stop ends the background sweep. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// prune keeps the events still inside the window; events are in time order
func (l *Limiter) prune(events []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(events) && !events[i].After(cutoff) {
		i++
	}
	return events[i:]
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, events := range l.events {
		if recent := l.prune(events, now); len(recent) == 0 {
			delete(l.events, key)
		} else {
			l.events[key] = recent
		}
	}
}
