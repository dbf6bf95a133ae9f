package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotteryweb/internal/lottery"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	healthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, version, body["version"])
}

func TestValidateFileHandler(t *testing.T) {
	a, dir := newTestApp(t)

	type response struct {
		Success bool           `json:"success"`
		Data    ValidateResult `json:"data"`
		Error   string         `json:"error"`
	}

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		check      func(t *testing.T, resp response)
	}{
		{
			name:       "valid workbook",
			req:        uploadRequest(t, "/api/validate", "participants.xlsx", threeParticipants(t)),
			wantStatus: http.StatusOK,
			check: func(t *testing.T, resp response) {
				assert.True(t, resp.Success)
				assert.Equal(t, ValidateResult{FileName: "participants.xlsx", Sheet: "Sheet1", Participants: 3}, resp.Data)
			},
		},
		{
			name:       "malformed workbook",
			req:        uploadRequest(t, "/api/validate", "participants.xlsx", []byte("garbage")),
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp response) {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, "unreadable spreadsheet")
			},
		},
		{
			name:       "missing file",
			req:        uploadRequest(t, "/api/validate", "", nil),
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, resp response) {
				assert.Equal(t, "no file provided", resp.Error)
			},
		},
		{
			name:       "wrong method",
			req:        httptest.NewRequest(http.MethodGet, "/api/validate", nil),
			wantStatus: http.StatusMethodNotAllowed,
			check: func(t *testing.T, resp response) {
				assert.Equal(t, "Method not allowed", resp.Error)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.routes().ServeHTTP(w, tt.req)

			assert.Equal(t, tt.wantStatus, w.Code, "body: %s", w.Body.String())
			var resp response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			tt.check(t, resp)
		})
	}
	assertStagingEmpty(t, dir)
}

func TestAPIDrawHandler(t *testing.T) {
	a, _ := newTestApp(t)
	w := httptest.NewRecorder()

	a.routes().ServeHTTP(w, uploadRequest(t, "/api/draw", "participants.xlsx", threeParticipants(t)))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool           `json:"success"`
		Data    lottery.Winner `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, lottery.Winner{Name: "Alice", Number: "0821234567", Amount: "10.50", TotalAmount: "35.75"}, resp.Data)
	assert.Empty(t, w.Result().Cookies(), "the JSON draw does not stage a winner")
}

func TestAPIDrawTooLarge(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfg.Upload.MaxBytes = 64
	w := httptest.NewRecorder()

	a.routes().ServeHTTP(w, uploadRequest(t, "/api/draw", "participants.xlsx", threeParticipants(t)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
