// Package translate provides the Gemini-backed card name translator. The
// translator is optional: without an API key the merge falls back to empty
// provisional names, which the EN feed overwrites when the card releases.
package translate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/logging"
	"github.com/sekaitools/promotrack/pkg/reconcile"
)

// DefaultModel is the generation model used for translations.
const DefaultModel = "gemini-2.0-flash"

const prompt = "Translate this Japanese card title into natural English. " +
	"Reply with the translation only, no quotes or explanations: %s"

// Translator translates Japanese card names through the Gemini API.
type Translator struct {
	client *genai.Client
	model  string
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel overrides the generation model.
func WithModel(model string) Option {
	return func(t *Translator) {
		t.model = model
	}
}

// New creates a Translator from an API key.
func New(ctx context.Context, apiKey string, opts ...Option) (*Translator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.WrapResource("create", "translator", "", err)
	}

	t := &Translator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// FromEnv creates a Translator when GEMINI_API_KEY is set, or the no-op
// translator when it is not.
func FromEnv(ctx context.Context) (reconcile.Translator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logging.Debug().Msg("GEMINI_API_KEY not set, card name translation disabled")
		return reconcile.NopTranslator(), nil
	}
	return New(ctx, apiKey)
}

// Translate renders a Japanese card name in English.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	resp, err := t.client.Models.GenerateContent(ctx, t.model,
		genai.Text(fmt.Sprintf(prompt, text)), nil)
	if err != nil {
		return "", errors.WrapResource("fetch", "translation", text, err)
	}

	return strings.TrimSpace(resp.Text()), nil
}
