package middleware

import (
	"net/http"
	"testing"

	"cinebook/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecover_WritesInternalError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	}))

	rec := serve(h, http.MethodGet, "/api/movies")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, utils.CodeInternalServerError, body.Code)
	assert.NotContains(t, body.Error, "nil map")
	assert.Equal(t, 1, logs.FilterMessage("PANIC recovered").Len())
}

func TestRecover_RepanicsOnAbort(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(h, http.MethodGet, "/stream")
	})
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusConflict, "warn"},
		{http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		core, logs := observer.New(zap.DebugLevel)
		h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		serve(h, http.MethodGet, "/api/showtimes")

		entries := logs.All()
		if assert.Len(t, entries, 1) {
			assert.Equal(t, tt.level, entries[0].Level.String())
			assert.Equal(t, int64(tt.status), entries[0].ContextMap()["status"])
		}
	}
}
