package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type resultResponse[T any] struct {
	Result T `json:"result"`
}

type errorResponse struct {
	Error *HTTPError `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeResult[T any](w http.ResponseWriter, v T) {
	writeJSON(w, http.StatusOK, resultResponse[T]{Result: v})
}

// writeError renders err and logs server-side failures.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	he := toHTTPError(err)
	he.RequestID = RequestIDFromContext(r.Context())

	if he.Code >= http.StatusInternalServerError && he.Err != nil {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", he.Err.Error()),
		)
	}

	writeJSON(w, he.Code, errorResponse{Error: he})
}
