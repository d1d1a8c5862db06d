package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorsPreflight(t *testing.T) {
	handler := Cors()

	called := false
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("OPTIONS", "/v1/data", nil),
		func(http.ResponseWriter, *http.Request) { called = true })

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, called)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCorsPassThrough(t *testing.T) {
	handler := Cors()

	called := false
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/v1/data", nil),
		func(http.ResponseWriter, *http.Request) { called = true })

	assert.True(t, called)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
