package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/lunchvote/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusOK, map[string]interface{}{"votes": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"votes":3}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	log, buf := logger.GetTestLogger(t)
	ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), log)
	req := httptest.NewRequest(http.MethodPost, "/restaurants", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	cause := errors.New("insert failed: password=hunter2")
	RespondWithErrorAndLog(w, req, http.StatusBadRequest, "validation failed", cause,
		WithDetails([]string{"name must not be blank"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, []string{"name must not be blank"}, body.Errors)
	assert.Equal(t, "trace-1", body.TraceID)
	assert.NotContains(t, w.Body.String(), "hunter2")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestRespondWithErrorLogLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		opts   []ResponseOption
		level  string
	}{
		{"server error", http.StatusInternalServerError, nil, "ERROR"},
		{"client error", http.StatusNotFound, nil, "DEBUG"},
		{"elevated client error", http.StatusConflict, []ResponseOption{WithElevatedLogLevel()}, "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := logger.GetTestLogger(t)
			req := httptest.NewRequest(http.MethodGet, "/x", nil).
				WithContext(logger.WithLogger(context.Background(), log))
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, req, tt.status, "msg", errors.New("cause"), tt.opts...)

			entries, err := buf.GetLogEntries()
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0]["level"])
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRespondWithErrorOmitsEmptyDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "not found")

	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}
