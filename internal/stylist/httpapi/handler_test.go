package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/mimartz/storefront/internal/stylist/app"
	"github.com/mimartz/storefront/internal/stylist/domain"
	"github.com/mimartz/storefront/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStylistDisabled(t *testing.T) {
	r := mux.NewRouter()
	r.Use(httpx.WithSession)
	NewHandler(app.NewService(nil, nil)).Register(r)

	req := httptest.NewRequest(http.MethodPost, "/api/stylist/messages", strings.NewReader(`{"message":"Loafers for a wedding?"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got messageJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsError)
	assert.Equal(t, domain.FallbackUnreachable, got.Text)

	sid := rec.Header().Get(httpx.SessionHeader)
	require.NotEmpty(t, sid)

	req = httptest.NewRequest(http.MethodGet, "/api/stylist/messages", nil)
	req.Header.Set(httpx.SessionHeader, sid)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var hist struct {
		Messages []messageJSON `json:"messages"`
		Enabled  bool          `json:"enabled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.False(t, hist.Enabled)
	require.Len(t, hist.Messages, 3)
	assert.Equal(t, domain.Welcome, hist.Messages[0].Text)

	req = httptest.NewRequest(http.MethodPost, "/api/stylist/messages", strings.NewReader(`{"message":""}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
