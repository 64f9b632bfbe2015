package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{name: "default", config: Config{}, want: "info"},
		{name: "verbose", config: Config{Verbose: true}, want: "debug"},
		{name: "quiet", config: Config{Quiet: true}, want: "warn"},
		{name: "both prefer quiet", config: Config{Verbose: true, Quiet: true}, want: "warn"},
		{name: "explicit wins", config: Config{Verbose: true, LogLevel: "error"}, want: "error"},
		{name: "invalid falls back", config: Config{LogLevel: "noisy"}, want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestUpdateFromFlagsKeepsUnsetValues(t *testing.T) {
	c := Config{DataDir: "configured", LogLevel: "debug"}

	c.UpdateFromFlags(true, false, "", "")

	assert.True(t, c.Verbose)
	assert.Equal(t, "configured", c.DataDir)
	assert.Equal(t, "debug", c.LogLevel)

	c.UpdateFromFlags(false, false, "elsewhere", "warn")
	assert.Equal(t, "elsewhere", c.DataDir)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestSyncOptionsRejectsUnknownLocale(t *testing.T) {
	_, err := syncOptions(false, []string{"jp", "kr"})
	require.Error(t, err)

	opts, err := syncOptions(true, []string{"jp"})
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestVersionCommand(t *testing.T) {
	a, err := New("1.2.3", "abc", "today")
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := a.createRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "promotrack version 1.2.3")
}
