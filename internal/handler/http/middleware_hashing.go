package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/daybook/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of a request or response body.
const hashHeader = "HashSHA256"

// withHashing checks the HashSHA256 header of signed requests and signs
// response bodies with the configured hash key. A request with a signature
// that does not match its body is rejected with 400. Without a key requests
// and responses pass through untouched.
func (h *Handler) withHashing(next http.Handler) http.Handler {
	if h.hashKey == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if signature := r.Header.Get(hashHeader); signature != "" {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				h.logger.Err(err).Str("func", "*Handler.withHashing").Msg("failed to read request body")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !utils.VerifyHash(body, signature, h.hashKey) {
				h.logger.Error().Str("func", "*Handler.withHashing").
					Str("hash from request", signature).
					Msg("hashes are not equal")
				http.Error(w, "Integrity check failed", http.StatusBadRequest)
				return
			}
		}

		bw := &bufferedResponseWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		body := bw.body.Bytes()
		if len(body) > 0 {
			w.Header().Set(hashHeader, utils.HashString(string(body), h.hashKey))
		}

		if err := bw.flush(); err != nil {
			h.logger.Err(err).Str("func", "*Handler.withHashing").Msg("failed to write response")
		}
	})
}
