package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadRequest, CodeAvailabilityOverlap, "пересечение", map[string]string{"startTime": "09:00"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeAvailabilityOverlap, body["code"])
	assert.Equal(t, map[string]interface{}{"startTime": "09:00"}, body["details"])
}

func TestRespondError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, CodeServiceNotFound, "услуга не найдена")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "details")
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"cut"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "cut", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?take=5&skip=x&empty=", nil)

	v, err := QueryInt(r, "take")
	require.NoError(t, err)
	assert.Equal(t, 5, *v)

	_, err = QueryInt(r, "skip")
	assert.Error(t, err)

	v, err = QueryInt(r, "empty")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = QueryInt(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}
