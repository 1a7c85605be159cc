package handlers

import (
	"net/http"

	"pupils-backend/schema"
	"pupils-backend/service"
)

type ClassHandler struct {
	svc *service.PupilService
}

func NewClassHandler(svc *service.PupilService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// GetClasses never fails on an empty table, unlike the pupil list.
func (h *ClassHandler) GetClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.svc.Classes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.DumpSchoolClasses(classes))
}
