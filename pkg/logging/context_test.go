package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sekaitools/promotrack/pkg/logging"
)

func TestWithLoggerAndFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	got := logging.FromContext(ctx)
	assert.Equal(t, &logger, got)
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	assert.Equal(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck // exercising nil handling
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)

	ctx := logging.WithLogger(context.Background(), &logger)
	ctx = logging.WithFeed(ctx, "gachas")
	ctx = logging.WithLocale(ctx, "jp")

	logging.FromContext(ctx).Info().Msg("fetching")

	out := buf.String()
	assert.Contains(t, out, `"feed":"gachas"`)
	assert.Contains(t, out, `"locale":"jp"`)
	assert.Contains(t, out, "fetching")
}

func TestCtxAlias(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &logger)
	assert.Equal(t, logging.FromContext(ctx), logging.Ctx(ctx))
}
