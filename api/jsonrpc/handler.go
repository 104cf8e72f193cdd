package jsonrpc

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// DefaultMaxBodyBytes caps the size of a request body.
const DefaultMaxBodyBytes = 1 << 20

// Handler serves Dispatch over http. Every answer is a 200 with a json envelope;
// success or failure is carried by the envelope's ok flag.
func Handler(logger *logrus.Logger, s *Server, maxBodyBytes int64) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp *Response
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			logger.WithContext(r.Context()).WithError(err).Warn("Failed to read request body")
			resp = NewError(0, NewErrf(CodeParseError, "could not read request body: %v", err))
		} else {
			resp = s.Dispatch(r.Context(), body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		err = json.NewEncoder(w).Encode(resp)
		if err != nil {
			logger.WithContext(r.Context()).WithError(err).Error("Failed to write response")
		}
	})
}

// Register mounts the json-rpc endpoint on mux as a POST to the root path.
func Register(logger *logrus.Logger, mux *http.ServeMux, s *Server, maxBodyBytes int64) {
	mux.Handle(http.MethodPost+" /{$}", Handler(logger, s, maxBodyBytes))
}
