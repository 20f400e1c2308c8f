package locale

import (
	"context"
	"net/http"
)

// QueryParam selects a locale for the request and persists it.
const QueryParam = "lang"

// ForRequest builds the provider of one request. The locale comes from the
// lang query parameter, then the stored preference (cookie, then profile),
// then Accept-Language, then def. profile may be nil.
func ForRequest(w http.ResponseWriter, r *http.Request, c *Catalog, def Code, profile PreferenceStore) *Provider {
	fallback := def
	if code, ok := MatchAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		fallback = code
	}
	stores := Stores{NewCookieStore(w, r)}
	if profile != nil {
		stores = append(stores, profile)
	}
	p := NewProvider(c, stores, fallback)
	if q := r.URL.Query().Get(QueryParam); q != "" {
		if err := p.SetLocale(q); err != nil {
			p.log.DebugContext(r.Context(), "ignoring lang parameter",
				"value", q,
			)
		}
	}
	return p
}

type ctxKey struct{}

// WithProvider stores p in ctx.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the request's provider.
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Provider)
	return p, ok
}
