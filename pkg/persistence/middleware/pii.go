package middleware

import (
	"context"
	"net/url"
	"regexp"

	"github.com/aretw0/thermoprops/pkg/ports"
	"github.com/aretw0/thermoprops/pkg/query"
)

// reserved parameters carry the workspace itself and are never masked.
var reserved = map[string]bool{
	query.KeyFluid:   true,
	query.KeyUnits:   true,
	query.KeyStates:  true,
	query.KeyView:    true,
	query.KeyPlot:    true,
	query.KeyIsoline: true,
}

type piiMiddleware struct {
	next     ports.QueryStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of extra query parameters whose
// name matches one of the patterns (e.g. "token", "^email$").
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.QueryStore) ports.QueryStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, id string, raw string) error {
	// Unparseable pairs are dropped rather than stored unmasked.
	values, err := url.ParseQuery(raw)

	masked := false
	for k := range values {
		if reserved[k] {
			continue
		}
		for _, p := range m.patterns {
			if p.MatchString(k) {
				for i := range values[k] {
					values[k][i] = "***"
				}
				masked = true
				break
			}
		}
	}
	if !masked && err == nil {
		return m.next.Save(ctx, id, raw)
	}
	return m.next.Save(ctx, id, query.Encode(values))
}

func (m *piiMiddleware) Load(ctx context.Context, id string) (string, error) {
	return m.next.Load(ctx, id)
}

func (m *piiMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
