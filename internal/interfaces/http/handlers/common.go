// Package handlers implements the browse API's HTTP handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/veritext/frameunify/pkg/errors"
)

// errorBody is the JSON error envelope every handler returns on failure.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError renders err as the error envelope. AppErrors carry their own
// status mapping; anything else is an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if e, ok := err.(*errors.AppError); ok {
		appErr = e
	} else {
		appErr = errors.Wrap(err, errors.ErrCodeInternal, "internal error")
	}

	writeJSON(w, appErr.Code.HTTPStatus(), errorBody{Error: errorDetail{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}})
}

// queryInt parses an integer query parameter, returning def when absent and
// an error when present but malformed or negative.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.Newf(errors.ErrCodeBadRequest,
			"query parameter %s must be a non-negative integer", name)
	}
	return n, nil
}
