// FILE: lixenwraith/treeconfig/type_test.go
package treeconfig

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccessors(t *testing.T) {
	n := New()
	n.Configure(func(c *Node) {
		c.Set("str", "hello")
		c.Set("num_str", "42")
		c.Set("json_num", json.Number("9090"))
		c.Set("int64", int64(7))
		c.Set("float", 2.5)
		c.Set("bool_str", "true")
		c.Set("bool", false)
		c.Set("dur", "1m30s")
		c.Set("list", []any{"a", "b"})
		c.Set("words", "x y z")
		c.Set("nothing", nil)
		c.Group("grp").Set("inner", 1)
	})

	t.Run("String", func(t *testing.T) {
		s, err := n.String("str")
		require.NoError(t, err)
		assert.Equal(t, "hello", s)

		s, err = n.String("int64")
		require.NoError(t, err)
		assert.Equal(t, "7", s)

		s, err = n.String("nothing")
		require.NoError(t, err)
		assert.Empty(t, s)
	})

	t.Run("Integers", func(t *testing.T) {
		i, err := n.Int64("num_str")
		require.NoError(t, err)
		assert.Equal(t, int64(42), i)

		i, err = n.Int64("json_num")
		require.NoError(t, err)
		assert.Equal(t, int64(9090), i)

		v, err := n.Int("grp.inner")
		require.NoError(t, err)
		assert.Equal(t, 1, v)

		_, err = n.Int64("str")
		assert.Error(t, err)

		_, err = n.Int64("nothing")
		assert.Error(t, err)
	})

	t.Run("Bool", func(t *testing.T) {
		b, err := n.Bool("bool_str")
		require.NoError(t, err)
		assert.True(t, b)

		b, err = n.Bool("bool")
		require.NoError(t, err)
		assert.False(t, b)

		_, err = n.Bool("nothing")
		assert.Error(t, err)
	})

	t.Run("Float64", func(t *testing.T) {
		f, err := n.Float64("float")
		require.NoError(t, err)
		assert.Equal(t, 2.5, f)

		f, err = n.Float64("num_str")
		require.NoError(t, err)
		assert.Equal(t, 42.0, f)
	})

	t.Run("Duration", func(t *testing.T) {
		d, err := n.Duration("dur")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, d)
	})

	t.Run("StringSlice", func(t *testing.T) {
		s, err := n.StringSlice("list")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, s)

		s, err = n.StringSlice("words")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, s)
	})

	t.Run("PathErrors", func(t *testing.T) {
		_, err := n.String("grp")
		assert.True(t, errors.Is(err, ErrNotSetting))

		_, err = n.Int("missing")
		assert.True(t, errors.Is(err, ErrNameNotFound))

		_, err = n.Value("str.deeper")
		assert.True(t, errors.Is(err, ErrNotGroup))
	})
}
