package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"pupils-backend/apperror"
	"pupils-backend/export"
	"pupils-backend/schema"
	"pupils-backend/service"
)

const maxBodyBytes = 1 << 20

type PupilHandler struct {
	svc    *service.PupilService
	loader *schema.Loader
}

func NewPupilHandler(svc *service.PupilService, loader *schema.Loader) *PupilHandler {
	return &PupilHandler{svc: svc, loader: loader}
}

type pupilEnvelope struct {
	Message string             `json:"message"`
	Pupil   schema.PupilRecord `json:"pupil"`
}

func (h *PupilHandler) GetPupils(w http.ResponseWriter, r *http.Request) {
	pupils, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.DumpPupils(pupils))
}

func (h *PupilHandler) CreatePupil(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	in, err := h.loader.LoadPupil(body)
	if err != nil {
		logRejected(r, err)
		writeError(w, r, err)
		return
	}

	pupil, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, pupilEnvelope{
		Message: "Created new pupil.",
		Pupil:   schema.DumpPupil(pupil),
	})
}

func (h *PupilHandler) GetPupil(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		writeError(w, r, pupilNotFound(r))
		return
	}

	pupil, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.DumpPupil(pupil))
}

func (h *PupilHandler) UpdatePupil(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		writeError(w, r, pupilNotFound(r))
		return
	}

	// Проверяем существование ученика до разбора тела
	current, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	patch, err := h.loader.LoadPupilPatch(body)
	if err != nil {
		logRejected(r, err)
		writeError(w, r, err)
		return
	}

	pupil, err := h.svc.Apply(r.Context(), current, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schema.DumpPupil(pupil))
}

func (h *PupilHandler) DeletePupil(w http.ResponseWriter, r *http.Request) {
	id, ok := idVar(r, "id")
	if !ok {
		writeError(w, r, pupilNotFound(r))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignClass handles PATCH /api/pupils/{id}/{class_id}/.
func (h *PupilHandler) AssignClass(w http.ResponseWriter, r *http.Request) {
	h.moveToClass(w, r, false)
}

// ChangeClass handles PUT /api/pupils/{id}/{class_id}/ and fails when the
// pupil already sits in that class.
func (h *PupilHandler) ChangeClass(w http.ResponseWriter, r *http.Request) {
	h.moveToClass(w, r, true)
}

func (h *PupilHandler) moveToClass(w http.ResponseWriter, r *http.Request, strict bool) {
	pupilID, ok := idVar(r, "id")
	if !ok {
		writeError(w, r, pupilNotFound(r))
		return
	}
	classID, ok := idVar(r, "class_id")
	if !ok {
		writeError(w, r, apperror.NotFound(fmt.Sprintf("School Class with id %s not found.", mux.Vars(r)["class_id"])))
		return
	}

	move, message := h.svc.Assign, "Pupil has been assigned to %s class."
	if strict {
		move, message = h.svc.Reassign, "Pupil's class has been changed to %s class."
	}

	pupil, class, err := move(r.Context(), pupilID, classID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pupilEnvelope{
		Message: fmt.Sprintf(message, class.Name),
		Pupil:   schema.DumpPupil(pupil),
	})
}

func (h *PupilHandler) ExportPupils(w http.ResponseWriter, r *http.Request) {
	pupils, err := h.svc.Roster(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRoster(&buf, pupils); err != nil {
		writeError(w, r, apperror.Internal(err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="pupils.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("❌ Error writing roster workbook")
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, apperror.InvalidJSON(err)
	}
	return body, nil
}

func pupilNotFound(r *http.Request) error {
	return apperror.NotFound(fmt.Sprintf("Pupil with id %s not found.", mux.Vars(r)["id"]))
}

func logRejected(r *http.Request, err error) {
	var fields []string
	if e, ok := err.(*apperror.Error); ok && e.Fields != nil {
		fields = schema.SortedFields(e.Fields)
	}
	log.Debug().Str("path", r.URL.Path).Strs("fields", fields).Err(err).Msg("❌ Rejected pupil payload")
}
