// Package codec serializes ordered state collections to a single opaque token
// that can be embedded as a URL query-parameter value.
//
// The token is the standard base64 encoding of the JSON array of states, which keeps
// links created by earlier versions of the workspace decodable.
package codec

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/thermoprops/internal/logging"
	"github.com/aretw0/thermoprops/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// stateSchema validates one decoded element. Unknown fields are ignored.
const stateSchema = `{
	"type": "object",
	"required": ["id", "label", "property1", "property2", "value1", "value2"],
	"properties": {
		"id": {"type": "string"},
		"label": {"type": "string"},
		"property1": {"type": "string"},
		"property2": {"type": "string"},
		"value1": {"type": "string"},
		"value2": {"type": "string"}
	}
}`

var elementSchema = jsonschema.MustCompileString("state.json", stateSchema)

// Codec encodes and decodes state tokens, reporting decode failures to its logger and hooks.
type Codec struct {
	logger *slog.Logger
	hooks  domain.WorkspaceHooks
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.WorkspaceHooks) Option {
	return func(c *Codec) {
		c.hooks = hooks
	}
}

// New creates a Codec.
func New(opts ...Option) *Codec {
	c := &Codec{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = New()

// Encode serializes states with the default codec.
func Encode(states []domain.StateDefinition) string {
	return defaultCodec.Encode(states)
}

// Decode parses a token with the default codec. It never fails.
func Decode(token string) []domain.StateDefinition {
	return defaultCodec.Decode(context.Background(), token)
}

// Encode serializes the ordered states into a token.
func (c *Codec) Encode(states []domain.StateDefinition) string {
	if states == nil {
		states = []domain.StateDefinition{}
	}
	// Marshalling plain string fields cannot fail.
	data, _ := json.Marshal(states)
	return base64.StdEncoding.EncodeToString(data)
}

// Decode parses a token into states. Malformed tokens decode to an empty collection,
// and elements failing structural validation are dropped. Failures are logged, not returned.
func (c *Codec) Decode(ctx context.Context, token string) []domain.StateDefinition {
	if strings.TrimSpace(token) == "" {
		return []domain.StateDefinition{}
	}

	raw, err := decodeBase64(token)
	if err != nil {
		c.fail(ctx, "base64", err)
		return []domain.StateDefinition{}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.fail(ctx, "json", err)
		return []domain.StateDefinition{}
	}

	items, ok := parsed.([]any)
	if !ok {
		c.fail(ctx, "shape", fmt.Errorf("expected array, got %T", parsed))
		return []domain.StateDefinition{}
	}

	states := make([]domain.StateDefinition, 0, len(items))
	dropped := 0
	for _, item := range items {
		if err := elementSchema.Validate(item); err != nil {
			dropped++
			continue
		}
		var def domain.StateDefinition
		if err := mapstructure.Decode(item, &def); err != nil {
			dropped++
			continue
		}
		states = append(states, def)
	}

	if dropped > 0 {
		c.logger.Warn("Dropped invalid states from token", "dropped", dropped, "kept", len(states))
		if c.hooks.OnDecodeFailure != nil {
			c.hooks.OnDecodeFailure(ctx, &domain.FailureEvent{
				EventBase: domain.NewEventBase(domain.EventDecodeFailure),
				Kind:      "element",
				Detail:    fmt.Sprintf("%d dropped", dropped),
			})
		}
	}
	return states
}

func (c *Codec) fail(ctx context.Context, kind string, err error) {
	c.logger.Warn("Unable to decode states", "stage", kind, "err", err)
	if c.hooks.OnDecodeFailure != nil {
		c.hooks.OnDecodeFailure(ctx, &domain.FailureEvent{
			EventBase: domain.NewEventBase(domain.EventDecodeFailure),
			Kind:      kind,
			Detail:    err.Error(),
		})
	}
}

// decodeBase64 accepts the standard alphabet and, as a fallback, the URL-safe one.
// A '+' that went through form decoding unescaped comes back as a space.
func decodeBase64(token string) ([]byte, error) {
	token = strings.ReplaceAll(strings.TrimSpace(token), " ", "+")
	if data, err := base64.StdEncoding.DecodeString(token); err == nil {
		return data, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("invalid token encoding: %w", err)
	}
	return data, nil
}
