package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/openrelief/relief-be/internal/auth"
	"github.com/openrelief/relief-be/internal/services"
	"github.com/rs/zerolog/log"
)

// VolunteerHandler handles HTTP requests for volunteer operations.
type VolunteerHandler struct {
	volunteers services.VolunteerServiceProvider
	requests   services.RequestServiceProvider
}

// NewVolunteerHandler creates a new VolunteerHandler.
func NewVolunteerHandler(volunteers services.VolunteerServiceProvider, requests services.RequestServiceProvider) *VolunteerHandler {
	return &VolunteerHandler{volunteers: volunteers, requests: requests}
}

// Dashboard greets the authenticated volunteer.
func (h *VolunteerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve identity from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Welcome, volunteer %s!", identity.Username),
	})
}

// Apply handles a volunteer applying to a help request.
func (h *VolunteerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve identity from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	requestID, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	application, err := h.volunteers.Apply(identity.ID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "Request not found.", http.StatusNotFound)
		case errors.Is(err, services.ErrConflict):
			http.Error(w, "Already applied to this request.", http.StatusConflict)
		default:
			log.Error().Err(err).Int64("volunteer_id", identity.ID).Int64("request_id", requestID).Msg("Failed to submit application")
			http.Error(w, "Failed to submit application", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(application)
}

// ViewRequests lists all help requests for a volunteer to browse.
func (h *VolunteerHandler) ViewRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requests.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list help requests")
		http.Error(w, "Failed to retrieve requests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}
