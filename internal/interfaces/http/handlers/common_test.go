package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritext/frameunify/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"a": "<b>"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	// HTML escaping is off so annotated text survives verbatim.
	assert.JSONEq(t, `{"a":"<b>"}`, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "<b>")
}

func TestWriteErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New(errors.ErrCodeInstanceNotFound, "instance not found").WithDetail("instance_id=x"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "COR_004", body.Error.Code)
	assert.Equal(t, "instance not found", body.Error.Message)
	assert.Equal(t, "instance_id=x", body.Error.Detail)
}

func TestWriteErrorPlainError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "COMMON_001", body.Error.Code)
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=25&bad=x&neg=-1", nil)

	n, err := queryInt(r, "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	n, err = queryInt(r, "absent", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	_, err = queryInt(r, "bad", 0)
	assert.Error(t, err)

	_, err = queryInt(r, "neg", 0)
	assert.Error(t, err)
}
