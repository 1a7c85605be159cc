package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pupils-backend/apperror"
	"pupils-backend/middleware"
)

// messageResponse is the body of every failure except schema validation.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("❌ Error encoding response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.StatusOf(err)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(err).(*apperror.Error)
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Msgf("❌ %s %s failed", r.Method, r.URL.Path)
		writeJSON(w, status, messageResponse{Message: "Internal server error"})
		return
	}

	if appErr.Kind == apperror.KindValidation {
		writeJSON(w, status, appErr.Fields)
		return
	}
	writeJSON(w, status, messageResponse{Message: appErr.Message})
}

// idVar reads a numeric path variable. Routes only match digits, so a
// failure here means the value overflowed.
func idVar(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, messageResponse{
		Message: "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.",
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, messageResponse{
		Message: "The method is not allowed for the requested URL.",
	})
}
