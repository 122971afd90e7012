package datasource

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	c := NewCache[string](ttl)
	c.now = clock.now
	return c, clock
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Set("k", "v")

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	v, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestCacheExpiry(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("k", "v")

	clock.advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	c, _ := newTestCache(0)
	c.Set("k", "v")
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCacheCleanup(t *testing.T) {
	c, clock := newTestCache(time.Minute)
	c.Set("old", "1")
	clock.advance(2 * time.Minute)
	c.Set("new", "2")

	assert.Equal(t, 1, c.Cleanup())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestErrHTTPError(t *testing.T) {
	err := &ErrHTTP{StatusCode: 404, Status: "Not Found", Body: "page not found"}
	assert.Equal(t, "HTTP 404 Not Found: page not found", err.Error())
	assert.False(t, errors.Is(err, ErrRateLimited))
}

func TestErrHTTPRateLimited(t *testing.T) {
	var err error = &ErrHTTP{StatusCode: http.StatusTooManyRequests, Status: "Too Many Requests"}
	assert.ErrorIs(t, err, ErrRateLimited)
}
