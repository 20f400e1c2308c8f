package locale

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/message"
)

// PreferenceStore persists the chosen locale between sessions.
type PreferenceStore interface {
	// Load returns the raw stored value, it is validated by the caller.
	Load() (string, bool)
	Save(Code) error
}

// Document holds the attributes the active locale imposes on rendered pages.
type Document struct {
	Lang Code      `json:"lang"`
	Dir  Direction `json:"dir"`
}

// Provider holds the active locale of one session.
type Provider struct {
	catalog *Catalog
	store   PreferenceStore
	log     *slog.Logger

	mu      sync.RWMutex
	code    Code
	printer *message.Printer
}

// NewProvider starts on the stored preference when it is valid, on def otherwise.
// store may be nil.
func NewProvider(c *Catalog, store PreferenceStore, def Code) *Provider {
	if !def.Valid() {
		def = Default
	}
	p := &Provider{
		catalog: c,
		store:   store,
		log:     slog.Default().With(slog.String("component", "locale")),
	}
	code := def
	if store != nil {
		if raw, ok := store.Load(); ok {
			if stored, err := ParseCode(raw); err == nil {
				code = stored
			} else {
				p.log.Warn("ignoring invalid stored locale", slog.String("value", raw))
			}
		}
	}
	p.set(code)
	return p
}

func (p *Provider) set(code Code) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
	p.printer = p.catalog.Printer(code)
}

func (p *Provider) Locale() Code {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.code
}

// SetLocale switches the active locale and persists it. Unsupported values
// leave the provider untouched and are not persisted.
func (p *Provider) SetLocale(s string) error {
	code, err := ParseCode(s)
	if err != nil {
		return fmt.Errorf("set locale: %w", err)
	}
	p.set(code)
	if p.store != nil {
		if err := p.store.Save(code); err != nil {
			p.log.Warn("can't persist locale",
				slog.String("locale", string(code)),
				slog.String("err", err.Error()),
			)
		}
	}
	return nil
}

// T returns the active locale's string for key, or the key itself when the
// key is unknown.
func (p *Provider) T(key string) string {
	code := p.Locale()
	if v, ok := p.catalog.Lookup(code, key); ok {
		return v
	}
	p.log.Warn("unknown message key",
		slog.String("locale", string(code)),
		slog.String("key", key),
	)
	return key
}

// Tf formats the message for key with args through the locale's printer.
func (p *Provider) Tf(key string, args ...any) string {
	code := p.Locale()
	if _, ok := p.catalog.Lookup(code, key); !ok {
		return p.T(key)
	}
	p.mu.RLock()
	pr := p.printer
	p.mu.RUnlock()
	return pr.Sprintf(key, args...)
}

func (p *Provider) Document() Document {
	code := p.Locale()
	return Document{
		Lang: code,
		Dir:  code.Direction(),
	}
}

// Table returns the active locale's full message table.
func (p *Provider) Table() map[string]string {
	return p.catalog.Table(p.Locale())
}

// FormatDate renders t as a long date with hours and minutes, in t's location.
func (p *Provider) FormatDate(t time.Time) string {
	return strings.NewReplacer(
		"{day}", strconv.Itoa(t.Day()),
		"{month}", p.T("month."+strconv.Itoa(int(t.Month()))),
		"{year}", strconv.Itoa(t.Year()),
		"{time}", t.Format("15:04"),
	).Replace(p.T("format.dateLong"))
}
