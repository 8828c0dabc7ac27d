// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.Uint64())

	id, err = ParseID("id", "0x2a")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id.Uint64())

	_, err = ParseID("id", "0x1"+"00000000000000000000000000000000")
	assert.Error(t, err)

	_, err = ParseID("id", "abc")
	assert.Error(t, err)
}

func TestParseAddress(t *testing.T) {
	_, err := ParseAddress("addr", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed")
	assert.NoError(t, err)
	_, err = ParseAddress("addr", "0x00")
	assert.Error(t, err)
}

func TestWrapHandlerFunc(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{BadRequest(errors.New("bad")), http.StatusBadRequest},
		{NotFound(errors.New("none")), http.StatusNotFound},
		{Forbidden(errors.New("no")), http.StatusForbidden},
		{HTTPError(errors.New("teapot"), http.StatusTeapot), http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
		{errors.WithMessage(NotFound(errors.New("deep")), "wrapped"), http.StatusNotFound},
		{HTTPError(nil, http.StatusConflict), http.StatusConflict},
	}
	for _, tt := range tests {
		h := WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error { return tt.err })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tt.status, rec.Code)
		if tt.err == nil {
			continue
		}
		assert.Equal(t, tt.status, StatusOf(tt.err))
		var body M
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	}
}
