package reconcile

import "context"

// Translator produces an English rendering of a Japanese card name. The
// result is a provisional display name only; the EN feed stays authoritative
// and overwrites it once the card releases there.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type nopTranslator struct{}

func (nopTranslator) Translate(_ context.Context, _ string) (string, error) {
	return "", nil
}

// NopTranslator returns a Translator that always yields an empty name.
func NopTranslator() Translator {
	return nopTranslator{}
}
