package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*ipLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)}
	l := &ipLimiter{
		name:    "test",
		limit:   limit,
		window:  window,
		now:     clock.now,
		entries: make(map[string]*windowEntry),
	}
	return l, clock
}

func TestIPLimiter_VentanaFija(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	ok, _ := l.allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.allow("10.0.0.1")
	assert.True(t, ok)
	ok, reset := l.allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, clock.t.Add(time.Minute), reset)

	ok, _ = l.allow("10.0.0.2")
	assert.True(t, ok, "limits are per IP")

	clock.advance(time.Minute + time.Second)
	ok, _ = l.allow("10.0.0.1")
	assert.True(t, ok, "a new window starts after expiry")
}

func TestIPLimiter_Purge(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)
	l.allow("10.0.0.1")
	clock.advance(30 * time.Second)
	l.allow("10.0.0.2")

	clock.advance(45 * time.Second)
	assert.Equal(t, 1, l.purge())
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "10.0.0.2")
}

func TestIPLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l, _ := newTestLimiter(1, time.Minute)
	r := gin.New()
	r.POST("/api/login", l.handler("Demasiados intentos"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	w := do()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Demasiados intentos")
}
