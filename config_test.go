// FILE: lixenwraith/treeconfig/config_test.go
package treeconfig

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGroupCreation tests lazy, idempotent group creation
func TestGroupCreation(t *testing.T) {
	t.Run("SameInstance", func(t *testing.T) {
		n := New()
		first := n.Group("db")
		second := n.Group("db")

		assert.Same(t, first, second)
		assert.Empty(t, n.SettingKeys(), "group creation must not touch settings")
		assert.Equal(t, []string{"db"}, n.GroupKeys())
	})

	t.Run("DistinctNames", func(t *testing.T) {
		n := New()
		assert.NotSame(t, n.Group("a"), n.Group("b"))
	})

	t.Run("ExtendNotReplace", func(t *testing.T) {
		n := New()
		var order []string

		n.Group("server", func(s *Node) {
			s.Set("host", "localhost")
			s.Set("port", 80)
			order = append(order, "first")
		})
		n.Group("server", func(s *Node) {
			s.Set("port", 8080)
			s.Set("tls", true)
			order = append(order, "second")
		})

		s := n.Group("server")
		assert.Equal(t, []string{"first", "second"}, order)
		assert.Equal(t, []string{"host", "port", "tls"}, s.SettingKeys())
		port, _ := s.Get("port")
		assert.Equal(t, 8080, port)
		host, _ := s.Get("host")
		assert.Equal(t, "localhost", host)
	})

	t.Run("MultiplePopulateInOrder", func(t *testing.T) {
		n := New()
		g := n.Group("g",
			func(c *Node) { c.Set("k", 1) },
			func(c *Node) { c.Set("k", 2) },
		)
		val, _ := g.Get("k")
		assert.Equal(t, 2, val)
	})
}

// TestSetGet tests leaf storage semantics
func TestSetGet(t *testing.T) {
	n := New()

	t.Run("Overwrite", func(t *testing.T) {
		n.Set("k", "v1")
		n.Set("k", "v2")
		val, ok := n.Get("k")
		assert.True(t, ok)
		assert.Equal(t, "v2", val)
	})

	t.Run("Absent", func(t *testing.T) {
		val, ok := n.Get("missing")
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("NilValueIsPresent", func(t *testing.T) {
		n.Set("empty", nil)
		val, ok := n.Get("empty")
		assert.True(t, ok)
		assert.Nil(t, val)
	})

	t.Run("DoesNotSearchGroups", func(t *testing.T) {
		n.Group("child").Set("inner", 1)
		_, ok := n.Get("inner")
		assert.False(t, ok)
		_, ok = n.Get("child")
		assert.False(t, ok)
	})
}

// TestConfigure tests the programmatic builder entry point
func TestConfigure(t *testing.T) {
	n := New()
	n.Configure(func(c *Node) {
		c.Set("name", "demo")
		c.Group("database", func(db *Node) {
			db.Set("host", "db.local")
			db.Group("pool", func(p *Node) {
				p.Set("size", 10)
			})
		})
	})
	n.Configure(nil)

	host, err := n.String("database.host")
	require.NoError(t, err)
	assert.Equal(t, "db.local", host)

	size, err := n.Int("database.pool.size")
	require.NoError(t, err)
	assert.Equal(t, 10, size)
}

// TestResolve tests dual-namespace resolution
func TestResolve(t *testing.T) {
	n := New()
	n.Set("x", 1)
	y := n.Group("y")

	t.Run("Setting", func(t *testing.T) {
		entry, err := n.Resolve("x")
		require.NoError(t, err)
		assert.Equal(t, KindSetting, entry.Kind())
		assert.False(t, entry.IsGroup())
		assert.Equal(t, 1, entry.Value())
		_, isGroup := entry.Group()
		assert.False(t, isGroup)
	})

	t.Run("Group", func(t *testing.T) {
		entry, err := n.Resolve("y")
		require.NoError(t, err)
		assert.True(t, entry.IsGroup())
		g, ok := entry.Group()
		require.True(t, ok)
		assert.Same(t, y, g)
		assert.Nil(t, entry.Value())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := n.Resolve("z")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNameNotFound))
		assert.Contains(t, err.Error(), `"z"`)
	})

	t.Run("GroupWinsOnCollision", func(t *testing.T) {
		c := New()
		c.Set("shared", "leaf")
		g := c.Group("shared")

		entry, err := c.Resolve("shared")
		require.NoError(t, err)
		got, ok := entry.Group()
		require.True(t, ok)
		assert.Same(t, g, got)

		// The setting is still reachable through Get
		val, ok := c.Get("shared")
		assert.True(t, ok)
		assert.Equal(t, "leaf", val)
	})

	t.Run("Chained", func(t *testing.T) {
		y.Group("z").Set("leaf", "deep")

		entry, err := n.Resolve("y")
		require.NoError(t, err)
		entry, err = entry.Resolve("z")
		require.NoError(t, err)
		entry, err = entry.Resolve("leaf")
		require.NoError(t, err)
		assert.Equal(t, "deep", entry.Value())

		_, err = entry.Resolve("further")
		assert.True(t, errors.Is(err, ErrNotGroup))
	})
}

// TestLookup tests dotted path resolution
func TestLookup(t *testing.T) {
	n := New()
	n.Group("database", func(db *Node) {
		db.Set("host", "localhost")
		db.Group("replica").Set("host", "replica.local")
	})

	tests := []struct {
		name      string
		path      string
		wantGroup bool
		wantValue any
		wantErr   error
	}{
		{"TopGroup", "database", true, nil, nil},
		{"Leaf", "database.host", false, "localhost", nil},
		{"DeepLeaf", "database.replica.host", false, "replica.local", nil},
		{"Missing", "database.port", false, nil, ErrNameNotFound},
		{"MissingRoot", "cache.size", false, nil, ErrNameNotFound},
		{"ThroughSetting", "database.host.name", false, nil, ErrNotGroup},
		{"Empty", "", false, nil, ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := n.Lookup(tt.path)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantGroup, entry.IsGroup())
			if !tt.wantGroup {
				assert.Equal(t, tt.wantValue, entry.Value())
			}
		})
	}
}

// TestSetPath tests dotted writes
func TestSetPath(t *testing.T) {
	n := New()
	require.NoError(t, n.SetPath("server.tls.cert", "/etc/cert.pem"))
	require.NoError(t, n.SetPath("debug", true))

	cert, err := n.String("server.tls.cert")
	require.NoError(t, err)
	assert.Equal(t, "/etc/cert.pem", cert)
	assert.True(t, n.HasGroup("server"))
	assert.True(t, n.Group("server").HasGroup("tls"))
	assert.True(t, n.HasSetting("debug"))

	for _, bad := range []string{"", "a..b", ".a", "a.", "a b", "a.b!"} {
		err := n.SetPath(bad, 1)
		assert.True(t, errors.Is(err, ErrInvalidPath), "path %q", bad)
	}
}

// TestTraversal tests Walk, Paths, ToMap and Clone
func TestTraversal(t *testing.T) {
	n := New()
	n.Set("b", 2)
	n.Set("a", 1)
	n.Group("c", func(c *Node) {
		c.Set("z", "last")
		c.Group("d").Set("e", 3)
	})

	t.Run("PathsSorted", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c.d.e", "c.z"}, n.Paths())
	})

	t.Run("WalkStopsOnError", func(t *testing.T) {
		stop := errors.New("stop")
		var seen []string
		err := n.Walk(func(path string, _ any) error {
			seen = append(seen, path)
			if path == "b" {
				return stop
			}
			return nil
		})
		assert.Equal(t, stop, err)
		assert.Equal(t, []string{"a", "b"}, seen)
	})

	t.Run("ToMap", func(t *testing.T) {
		expected := map[string]any{
			"a": 1,
			"b": 2,
			"c": map[string]any{
				"z": "last",
				"d": map[string]any{"e": 3},
			},
		}
		assert.Equal(t, expected, n.ToMap())
	})

	t.Run("CloneIsIndependent", func(t *testing.T) {
		clone := n.Clone()
		assert.Equal(t, n.ToMap(), clone.ToMap())

		clone.Group("c").Set("z", "changed")
		clone.Group("new")

		z, _ := n.Group("c").Get("z")
		assert.Equal(t, "last", z)
		assert.False(t, n.HasGroup("new"))
		assert.NotSame(t, n.Group("c"), clone.Group("c"))
	})

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 3, n.Len())
	})
}
