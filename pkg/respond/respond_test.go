package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		data     interface{}
		wantCode int
		wantBody map[string]interface{}
	}{
		{
			name:     "success response",
			code:     http.StatusOK,
			data:     map[string]interface{}{"reply": "pong", "motionForwarded": false},
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"reply": "pong", "motionForwarded": false},
		},
		{
			name:     "numeric fields",
			code:     http.StatusOK,
			data:     map[string]int{"count": 3},
			wantCode: http.StatusOK,
			wantBody: map[string]interface{}{"count": float64(3)}, // JSON unmarshals numbers as float64
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", nil)

			JSON(w, r, tt.code, tt.data)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var got map[string]interface{}
			err := json.NewDecoder(w.Body).Decode(&got)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, got)
		})
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	Error(w, r, http.StatusBadRequest, "Invalid JSON body")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "Invalid JSON body", got["error"])
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()

	Text(w, http.StatusInternalServerError, "openai returned status 500: boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "openai returned status 500: boom")
}
