package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes_MethodAndPathRules(t *testing.T) {
	h := newTestHandler(new(mockAI), new(mockCreator))
	router := h.Routes()

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "get to known path", method: http.MethodGet, path: "/bridge", wantCode: http.StatusMethodNotAllowed},
		{name: "get to unknown path", method: http.MethodGet, path: "/nope", wantCode: http.StatusMethodNotAllowed},
		{name: "delete to known path", method: http.MethodDelete, path: "/add-tasks", wantCode: http.StatusMethodNotAllowed},
		{name: "post to unknown path", method: http.MethodPost, path: "/nope", wantCode: http.StatusNotFound},
		{name: "health check", method: http.MethodGet, path: "/health", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.method == http.MethodPost {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
