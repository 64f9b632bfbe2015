package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/sekaitools/promotrack/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "locale",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field locale: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid configuration",
		}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestFeedError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.FeedError{
			Feed:       "gachas",
			Locale:     "jp",
			StatusCode: 503,
			Message:    "service unavailable",
		}
		assert.Contains(t, err.Error(), "jp/gachas")
		assert.Contains(t, err.Error(), "503")
		assert.True(t, pkgerrors.IsFeedUnavailable(err))
	})

	t.Run("with wrapped error", func(t *testing.T) {
		baseErr := errors.New("connection refused")
		err := &pkgerrors.FeedError{
			Feed:    "events",
			Locale:  "en",
			Message: "request failed",
			Err:     baseErr,
		}
		assert.Contains(t, err.Error(), "en/events")
		assert.Equal(t, baseErr, err.Unwrap())
	})
}

func TestParseError(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		err := pkgerrors.NewParseError("json", "jp_gachas.json", "unexpected end of input", nil)
		assert.Contains(t, err.Error(), "jp_gachas.json")
		assert.True(t, pkgerrors.IsMalformedFeed(err))
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("invalid character '}'")
		err := pkgerrors.WrapParse("json", "en_events.json", base)
		assert.Contains(t, err.Error(), "en_events.json")
		assert.True(t, errors.Is(err, pkgerrors.ErrMalformedFeed))
	})

	t.Run("nil passthrough", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapParse("json", "x.json", nil))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "data/jp_banners.json", base)
	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), "data/jp_banners.json")

	var ioErr *pkgerrors.IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.Equal(t, base, ioErr.Unwrap())
}

func TestResourceError(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		err := pkgerrors.NewResourceError("merge", "banner", "17", errors.New("boom"))
		assert.Equal(t, "failed to merge banner 17: boom", err.Error())
	})

	t.Run("without id", func(t *testing.T) {
		err := pkgerrors.NewResourceError("load", "catalog", "", errors.New("boom"))
		assert.Equal(t, "failed to load catalog: boom", err.Error())
	})
}
