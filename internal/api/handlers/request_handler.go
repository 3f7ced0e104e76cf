package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openrelief/relief-be/internal/auth"
	"github.com/openrelief/relief-be/internal/services"
	"github.com/rs/zerolog/log"
)

// RequestHandler handles HTTP requests for help requests.
type RequestHandler struct {
	service       services.RequestServiceProvider
	uploadDir     string
	maxUploadSize int64
	allowedExts   map[string]bool
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service services.RequestServiceProvider, uploadDir string, maxUploadSize int64, allowedExts map[string]bool) *RequestHandler {
	return &RequestHandler{
		service:       service,
		uploadDir:     uploadDir,
		maxUploadSize: maxUploadSize,
		allowedExts:   allowedExts,
	}
}

// Create handles posting a new help request as a multipart form with an
// optional photo upload.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve identity from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		http.Error(w, "Invalid or oversized form payload", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	location := r.FormValue("location")
	urgency := r.FormValue("urgency_level")
	if title == "" || description == "" || location == "" {
		http.Error(w, "title, description and location are required", http.StatusBadRequest)
		return
	}

	var photoName *string
	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !h.allowedExts[ext] {
			http.Error(w, "Photo file type is not allowed", http.StatusBadRequest)
			return
		}

		// Stored name is generated server-side; the client filename is never
		// used on disk.
		name := fmt.Sprintf("%d_%s%s", identity.ID, uuid.New().String(), ext)
		if err := h.savePhoto(name, file); err != nil {
			log.Error().Err(err).Str("photo", name).Msg("Failed to store uploaded photo")
			http.Error(w, "Failed to store photo", http.StatusInternalServerError)
			return
		}
		photoName = &name
	case errors.Is(err, http.ErrMissingFile):
		// photo is optional
	default:
		http.Error(w, "Invalid photo upload", http.StatusBadRequest)
		return
	}

	req, err := h.service.Create(identity.ID, title, description, location, urgency, photoName)
	if err != nil {
		if photoName != nil {
			// The row never landed, so the file written for it is removed too.
			os.Remove(filepath.Join(h.uploadDir, *photoName))
		}
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to create help request")
		http.Error(w, "Failed to create request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

// GetAll handles listing every help request.
func (h *RequestHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list help requests")
		http.Error(w, "Failed to retrieve requests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// Get handles retrieving a single help request by ID.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}

	req, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int64("request_id", id).Msg("Failed to get help request")
		http.Error(w, "Failed to retrieve request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func (h *RequestHandler) savePhoto(name string, src io.Reader) error {
	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return err
	}
	return nil
}
