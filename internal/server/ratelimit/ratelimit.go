// Package ratelimit provides per-client, per-endpoint rate limiting backed by token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	limit    int
	lastSeen time.Time
}

// Limiter manages rate limiting for multiple clients.
type Limiter struct {
	config *Config

	mu      sync.Mutex
	buckets map[string]*bucket // clientID:configured path:method -> bucket

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config enables limiting with a default of 1000 requests per minute.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = time.Hour
	}

	l := &Limiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupTicker = time.NewTicker(config.CleanupInterval)
		l.cleanupStop = make(chan struct{})
		go l.cleanup()
	}

	return l
}

// Allow reports whether a request from clientID to method+endpoint may proceed,
// consuming a token if so.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		// unmatched paths share one bucket per client and method
		endpointConfig = &EndpointConfig{
			Path:   "*",
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	now := time.Now()
	b := l.getBucket(clientID+":"+endpointConfig.Path+":"+method, endpointConfig, now)

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	perSecond := float64(b.limiter.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     b.limit,
		Remaining: max(0, int(tokens)),
		ResetTime: now,
	}
	if missing := float64(b.limiter.Burst()) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / perSecond * float64(time.Second)))
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - tokens) / perSecond * float64(time.Second))
	}
	return allowed, info
}

// getBucket gets or creates the bucket for key and marks it as used.
func (l *Limiter) getBucket(key string, cfg *EndpointConfig, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		every := rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds())
		b = &bucket{
			limiter: rate.NewLimiter(every, burst),
			limit:   cfg.Limit,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupBuckets(time.Now().Add(-l.config.IdleTTL))
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets removes buckets not used since cutoff.
func (l *Limiter) cleanupBuckets(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// bucketCount returns the number of tracked buckets.
func (l *Limiter) bucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
