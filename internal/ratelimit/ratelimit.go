package ratelimit

import (
	"fmt"
	"sync"
	"time"

	gerr "github.com/jekabolt/edupath/internal/errors"
)

// Limiter implements a simple in-memory fixed window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
	now      func() time.Time
	stop     chan struct{}
	once     sync.Once
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go l.cleanup(time.Minute)
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// Reset forgets the key, e.g. after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counters, key)
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, exists := l.counters[key]
	if !exists || l.now().After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.stop) })
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, c := range l.counters {
		if now.After(c.expiresAt) {
			delete(l.counters, key)
		}
	}
}

type Config struct {
	LoginPerIP    int           `mapstructure:"login_per_ip"`
	LoginPerEmail int           `mapstructure:"login_per_email"`
	SignupPerIP   int           `mapstructure:"signup_per_ip"`
	Window        time.Duration `mapstructure:"window"`
}

const (
	ipLogin    = "ip_login"
	emailLogin = "email_login"
	ipSignup   = "ip_signup"
)

// MultiKeyLimiter manages multiple rate limiters for different types of operations
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
}

// NewMultiKeyLimiter creates a limiter with the configured limits. Zero
// values fall back to 10 logins per IP, 5 per email and 5 signups per IP
// in a 15 minute window.
func NewMultiKeyLimiter(c *Config) *MultiKeyLimiter {
	cfg := Config{LoginPerIP: 10, LoginPerEmail: 5, SignupPerIP: 5, Window: 15 * time.Minute}
	if c != nil {
		if c.LoginPerIP > 0 {
			cfg.LoginPerIP = c.LoginPerIP
		}
		if c.LoginPerEmail > 0 {
			cfg.LoginPerEmail = c.LoginPerEmail
		}
		if c.SignupPerIP > 0 {
			cfg.SignupPerIP = c.SignupPerIP
		}
		if c.Window > 0 {
			cfg.Window = c.Window
		}
	}
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			ipLogin:    NewLimiter(cfg.Window, cfg.LoginPerIP),
			emailLogin: NewLimiter(cfg.Window, cfg.LoginPerEmail),
			ipSignup:   NewLimiter(cfg.Window, cfg.SignupPerIP),
		},
	}
}

// CheckLogin verifies if a login attempt is allowed from the given IP for
// the given email.
func (m *MultiKeyLimiter) CheckLogin(ip, email string) error {
	if !m.limiters[ipLogin].Allow(ip) {
		return fmt.Errorf("too many login attempts from this IP address: %w", gerr.ErrRateLimited)
	}
	if email != "" && !m.limiters[emailLogin].Allow(email) {
		return fmt.Errorf("too many login attempts for this account: %w", gerr.ErrRateLimited)
	}
	return nil
}

// LoginSucceeded clears the per-account counter.
func (m *MultiKeyLimiter) LoginSucceeded(email string) {
	m.limiters[emailLogin].Reset(email)
}

// CheckSignup verifies if a signup is allowed from the given IP
func (m *MultiKeyLimiter) CheckSignup(ip string) error {
	if !m.limiters[ipSignup].Allow(ip) {
		return fmt.Errorf("too many signups from this IP address: %w", gerr.ErrRateLimited)
	}
	return nil
}

// GetLoginLimits returns remaining login attempts for IP and email
func (m *MultiKeyLimiter) GetLoginLimits(ip, email string) (ipRemaining, emailRemaining int) {
	ipRemaining = m.limiters[ipLogin].GetRemaining(ip)
	if email != "" {
		emailRemaining = m.limiters[emailLogin].GetRemaining(email)
	} else {
		emailRemaining = -1 // not applicable
	}
	return ipRemaining, emailRemaining
}

func (m *MultiKeyLimiter) Close() {
	for _, l := range m.limiters {
		l.Close()
	}
}
