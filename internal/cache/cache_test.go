package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Nodes []int `json:"nodes"`
}

func TestKeyIsStableAndDialectSensitive(t *testing.T) {
	a := Key("bdd", "x0 & x1")
	b := Key("bdd", "x0 & x1")
	c := Key("ltl", "x0 & x1")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	c := New(t.TempDir())
	key := Key("bdd", "x0 & x1")

	hit, err := c.Load(key, &payload{})
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Store(key, payload{Nodes: []int{0, 1, 2}}))

	var out payload
	hit, err = c.Load(key, &out)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []int{0, 1, 2}, out.Nodes)
}

func TestDisabledCacheIsAlwaysAMiss(t *testing.T) {
	c := New("")
	require.NoError(t, c.Store("k", payload{Nodes: []int{1}}))
	hit, err := c.Load("k", &payload{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStoreCreatesCacheDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir)
	require.NoError(t, c.Store("k", payload{Nodes: []int{1}}))

	var out payload
	hit, err := c.Load("k", &out)
	require.NoError(t, err)
	require.True(t, hit)
}
