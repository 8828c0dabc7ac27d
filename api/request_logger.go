// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/tapedrive/tape/log"
)

// maxLoggedBody caps the request body echoed into the log. Raw transactions are hex and can be long.
const maxLoggedBody = 512

// RequestLoggerHandler logs every request once it has been served, with its status and latency.
func RequestLoggerHandler(handler http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			var err error
			if body, err = io.ReadAll(r.Body); err != nil {
				logger.Warn("unexpected body read error", "err", err)
				http.Error(w, "unreadable body", http.StatusBadRequest)
				return
			}
			// put it back for the wrapped handler
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		start := time.Now()
		rw := newMetricsResponseWriter(w)
		handler.ServeHTTP(rw, r)

		if len(body) > maxLoggedBody {
			body = append(body[:maxLoggedBody:maxLoggedBody], "..."...)
		}
		logger.Info("API Request",
			"method", r.Method,
			"uri", r.URL.String(),
			"status", rw.statusCode,
			"elapsed", time.Since(start),
			"body", string(body),
		)
	})
}
