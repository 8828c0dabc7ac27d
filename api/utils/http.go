// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// JSONContentType is the content type of every API response.
const JSONContentType = "application/json; charset=utf-8"

// M shortcut for type map[string]any.
type M map[string]any

// httpError carries the status a handler failure is answered with.
type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	if e.cause == nil {
		return http.StatusText(e.status)
	}
	return e.cause.Error()
}

func (e *httpError) Unwrap() error { return e.cause }

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

// BadRequest answers with 400.
func BadRequest(cause error) error { return HTTPError(cause, http.StatusBadRequest) }

// Forbidden answers with 403. Used for known transactions and exceeded limits.
func Forbidden(cause error) error { return HTTPError(cause, http.StatusForbidden) }

// NotFound answers with 404.
func NotFound(cause error) error { return HTTPError(cause, http.StatusNotFound) }

// StatusOf returns the status err is answered with, 500 unless it was built by HTTPError.
func StatusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	return http.StatusInternalServerError
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
// A returned error is written as {"error": message} with the status from StatusOf.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		h := w.Header()
		h.Set("Content-Type", JSONContentType)
		h.Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(StatusOf(err))
		_ = json.NewEncoder(w).Encode(M{"error": err.Error()})
	}
}

// ParseJSON decodes r into v, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}
