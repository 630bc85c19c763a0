package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/neoflix/neoflix-go/internal/apperr"
	"github.com/neoflix/neoflix-go/internal/params"
	"github.com/sirupsen/logrus"
)

func writeJSON(logger *logrus.Logger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeError maps domain error kinds to client-facing statuses. The
// three domain kinds are terminal for the operation; anything else is an
// infrastructure failure surfaced as a 500.
func writeError(logger *logrus.Logger, w http.ResponseWriter, err error) {
	kind, ok := apperr.GetKind(err)
	if !ok {
		logger.WithError(err).Error("request failed")
		writeJSON(logger, w, http.StatusInternalServerError, map[string]any{
			"message": "internal server error",
		})
		return
	}

	status := http.StatusBadRequest
	if kind == apperr.KindNotFound {
		status = http.StatusNotFound
	}

	body := map[string]any{"message": err.Error()}
	var appErr *apperr.Error
	if errors.As(err, &appErr) && len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	writeJSON(logger, w, status, body)
}

// bindParams parses the pagination/sort query string against the
// operation's allow-list.
func bindParams(r *http.Request, allowed params.Allowed) (params.Params, error) {
	q := r.URL.Query()
	return params.Parse(params.Raw{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
		Limit: q.Get("limit"),
		Skip:  q.Get("skip"),
	}, allowed)
}
