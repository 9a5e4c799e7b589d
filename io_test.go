// FILE: lixenwraith/treeconfig/io_test.go
package treeconfig

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseArgs tests command-line argument parsing
func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []argOverride
	}{
		{
			name:     "SpaceSeparated",
			args:     []string{"--server.port", "8080"},
			expected: []argOverride{{path: "server.port", value: "8080"}},
		},
		{
			name:     "EqualsSign",
			args:     []string{"--server.host=example.com"},
			expected: []argOverride{{path: "server.host", value: "example.com"}},
		},
		{
			name: "BooleanFlags",
			args: []string{"--debug", "--verbose", "--log.level", "info"},
			expected: []argOverride{
				{path: "debug", value: true},
				{path: "verbose", value: true},
				{path: "log.level", value: "info"},
			},
		},
		{
			name: "ExplicitBooleans",
			args: []string{"--a=false", "--b", "true"},
			expected: []argOverride{
				{path: "a", value: false},
				{path: "b", value: true},
			},
		},
		{
			name:     "QuotedValue",
			args:     []string{`--name="my app"`},
			expected: []argOverride{{path: "name", value: "my app"}},
		},
		{
			name:     "EmptyValue",
			args:     []string{"--name="},
			expected: []argOverride{{path: "name", value: ""}},
		},
		{
			name:     "SkipsPositionalsAndSeparator",
			args:     []string{"serve", "--", "-x", "--port=1"},
			expected: []argOverride{{path: "port", value: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("InvalidPath", func(t *testing.T) {
		_, err := parseArgs([]string{"--a..b=1"})
		assert.True(t, errors.Is(err, ErrInvalidPath))
	})
}

// TestApplyArgs tests argument overrides on a tree
func TestApplyArgs(t *testing.T) {
	n := New()
	n.Group("server").Set("port", 80)

	require.NoError(t, n.ApplyArgs([]string{"--server.port=8080", "--cache.enabled"}))

	port, _ := n.Group("server").Get("port")
	assert.Equal(t, "8080", port)
	enabled, _ := n.Group("cache").Get("enabled")
	assert.Equal(t, true, enabled)

	assert.NoError(t, n.ApplyArgs(nil))
}

// TestApplyEnv tests environment overrides on a tree
func TestApplyEnv(t *testing.T) {
	build := func() *Node {
		n := New()
		n.Set("name", "default")
		n.Group("server", func(s *Node) {
			s.Set("host", "localhost")
			s.Set("read-timeout", "5s")
			s.Set("tls", false)
		})
		return n
	}

	t.Run("DefaultTransform", func(t *testing.T) {
		t.Setenv("ENVTEST_SERVER_HOST", "env-host")
		t.Setenv("ENVTEST_SERVER_READ_TIMEOUT", "10s")
		t.Setenv("ENVTEST_SERVER_TLS", "true")
		t.Setenv("ENVTEST_UNKNOWN", "ignored")

		n := build()
		require.NoError(t, n.ApplyEnv("ENVTEST_", nil))

		host, _ := n.Group("server").Get("host")
		assert.Equal(t, "env-host", host)
		timeout, _ := n.Group("server").Get("read-timeout")
		assert.Equal(t, "10s", timeout)
		tls, _ := n.Group("server").Get("tls")
		assert.Equal(t, true, tls)
		name, _ := n.Get("name")
		assert.Equal(t, "default", name)
		assert.False(t, n.HasSetting("unknown"))
	})

	t.Run("CustomTransform", func(t *testing.T) {
		t.Setenv("X_name", "custom")

		n := build()
		require.NoError(t, n.ApplyEnv("", func(path string) string { return "X_" + path }))

		name, _ := n.Get("name")
		assert.Equal(t, "custom", name)
	})

	t.Run("ValueTooLarge", func(t *testing.T) {
		t.Setenv("BIGTEST_NAME", strings.Repeat("x", MaxValueSize+1))

		n := build()
		err := n.ApplyEnv("BIGTEST_", nil)
		assert.True(t, errors.Is(err, ErrValueSize))

		name, _ := n.Get("name")
		assert.Equal(t, "default", name, "nothing is applied when a value is rejected")
	})
}

func TestDefaultEnvTransform(t *testing.T) {
	transform := defaultEnvTransform("APP_")
	assert.Equal(t, "APP_SERVER_PORT", transform("server.port"))
	assert.Equal(t, "APP_LOG_MAX_SIZE", transform("log.max-size"))
	assert.Equal(t, "DEBUG", defaultEnvTransform("")("debug"))
}
