package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes wires the static route table. Paths end with a slash;
// requests without it are redirected.
func RegisterRoutes(r *mux.Router, pupils *PupilHandler, classes *ClassHandler, health *HealthHandler) {
	r.StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Публичные маршруты (без API префикса)
	r.HandleFunc("/", Index).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	// Ученики
	r.HandleFunc("/api/pupils/", pupils.GetPupils).Methods(http.MethodGet)
	r.HandleFunc("/api/pupils/", pupils.CreatePupil).Methods(http.MethodPost)
	r.HandleFunc("/api/pupils/export/", pupils.ExportPupils).Methods(http.MethodGet)
	r.HandleFunc("/api/pupils/{id:[0-9]+}/", pupils.GetPupil).Methods(http.MethodGet)
	r.HandleFunc("/api/pupils/{id:[0-9]+}/", pupils.UpdatePupil).Methods(http.MethodPatch)
	r.HandleFunc("/api/pupils/{id:[0-9]+}/", pupils.DeletePupil).Methods(http.MethodDelete)
	r.HandleFunc("/api/pupils/{id:[0-9]+}/{class_id:[0-9]+}/", pupils.AssignClass).Methods(http.MethodPatch)
	r.HandleFunc("/api/pupils/{id:[0-9]+}/{class_id:[0-9]+}/", pupils.ChangeClass).Methods(http.MethodPut)

	// Классы
	r.HandleFunc("/api/classes/", classes.GetClasses).Methods(http.MethodGet)
}
