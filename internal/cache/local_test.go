package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCache(t *testing.T) {
	c, err := NewLocalCache(2)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	t.Run("expires", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		c.Set("x", 1, time.Hour)
		c.Set("y", 2, time.Hour)
		c.Set("z", 3, time.Hour)
		_, ok := c.Get("x")
		assert.False(t, ok)
		_, ok = c.Get("z")
		assert.True(t, ok)
	})

	t.Run("purge", func(t *testing.T) {
		c.Purge()
		_, ok := c.Get("z")
		assert.False(t, ok)
	})
}

type nopLogger struct{ warnings int }

func (n *nopLogger) LogDebug(string, map[string]interface{}) {}
func (n *nopLogger) LogWarn(string, map[string]interface{})  { n.warnings++ }
func (n *nopLogger) LogError(err error, _ string) error      { return err }

func TestParseCounts(t *testing.T) {
	log := &nopLogger{}
	counts := parseCounts(map[string]string{
		"1":   "3",
		"2":   "0",
		"abc": "4",
		"5":   "x",
	}, log)

	assert.Equal(t, map[int64]int64{1: 3}, counts)
	assert.Equal(t, 1, log.warnings)
}
