package translate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekaitools/promotrack/pkg/reconcile"
)

func TestFromEnvWithoutKeyIsNop(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	tr, err := FromEnv(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reconcile.NopTranslator(), tr)

	name, err := tr.Translate(context.Background(), "限定カード")
	require.NoError(t, err)
	assert.Empty(t, name)
}
