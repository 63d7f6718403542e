package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func ok(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func hit(h httprouter.Handle, addr string) int {
	r := httptest.NewRequest(http.MethodPost, "/api/trip/plan", nil)
	r.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h(rec, r, nil)
	return rec.Code
}

func TestLimitPerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Limit(ok)

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1000"))
}

func TestSweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("a")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("b")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, rl.Sweep())
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "b")
}
