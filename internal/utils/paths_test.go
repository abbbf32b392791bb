package utils

import (
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)
	t.Setenv("LW_TEST_DIR", "/tmp/lw")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "tilde", input: "~/logs/debug.log", expected: filepath.Join(home, "logs", "debug.log")},
		{name: "env var", input: "$LW_TEST_DIR/cache", expected: "/tmp/lw/cache"},
		{name: "absolute", input: "/var/tmp/x", expected: "/var/tmp/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsPathWithin(t *testing.T) {
	base := filepath.Join("/home", "me", ".config", "lazyworksheets")

	assert.True(t, IsPathWithin(base, base))
	assert.True(t, IsPathWithin(base, filepath.Join(base, "config.yaml")))
	assert.False(t, IsPathWithin(base, filepath.Join(base, "..", "other.yaml")))
	assert.False(t, IsPathWithin(base, "/etc/passwd"))
}
