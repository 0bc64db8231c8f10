package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	results := 2

	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{
			name:     "list envelope",
			data:     models.Response{Status: models.StatusSuccess, Results: &results, Data: models.DataPayload{Data: []int{1, 2}}},
			status:   http.StatusOK,
			wantBody: `{"status":"success","results":2,"data":{"data":[1,2]}}`,
		},
		{
			name:     "fail envelope",
			data:     models.Response{Status: models.StatusFail, Message: "No document found with that ID"},
			status:   http.StatusNotFound,
			wantBody: `{"status":"fail","message":"No document found with that ID"}`,
		},
		{
			name:     "nil",
			data:     nil,
			status:   http.StatusOK,
			wantBody: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, w.Body.Len(), n)
		})
	}
}

func TestWriteJSON_UnsupportedValue(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]any{"ch": make(chan int)}, http.StatusOK)

	var unsupported *json.UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Zero(t, n)
	assert.Empty(t, w.Body.String(), "nothing is written when marshaling fails")
	assert.Empty(t, w.Header().Get("Content-Type"))
}
