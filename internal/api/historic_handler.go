package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"fleet-api/internal/domain"
	"fleet-api/internal/service/historic"
	"fleet-api/internal/store"
)

// HistoricHandler handles vehicle-usage record API requests.
// All routes here sit behind the auth middleware; every operation is scoped
// to or attributed to the authenticated user.
type HistoricHandler struct {
	service   *historic.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHistoricHandler creates a new HistoricHandler with the given dependencies.
func NewHistoricHandler(service *historic.Service, logger *slog.Logger) *HistoricHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoricHandler{
		service:   service,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "historic_handler")),
	}
}

// List handles GET /histories?skip&take&status.
func (h *HistoricHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	filter := store.HistoricFilter{UserID: identity.UserID}

	query := r.URL.Query()
	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid skip parameter")
			return
		}
		filter.Skip = skip
	}
	if raw := query.Get("take"); raw != "" {
		take, err := strconv.Atoi(raw)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid take parameter")
			return
		}
		filter.Take = take
	}
	if raw := query.Get("status"); raw != "" {
		status := domain.HistoricStatus(raw)
		if !status.IsValid() {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid status parameter")
			return
		}
		filter.Status = &status
	}

	historics, err := h.service.List(r.Context(), filter)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list historics", err)
		return
	}

	responses := make([]HistoricResponse, 0, len(historics))
	for i := range historics {
		responses = append(responses, historicToResponse(&historics[i]))
	}

	RespondWithJSON(w, r, http.StatusOK, responses)
}

// Get handles GET /histories/{id}.
func (h *HistoricHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrHistoricNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get historic", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, historicToResponse(record))
}

// Create handles POST /histories: checking out a vehicle.
func (h *HistoricHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	var req CreateHistoricRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	_, err := h.service.Create(
		r.Context(),
		identity.UserID,
		req.LicensePlate,
		req.Description,
		toCoordinates(req.Coords),
	)
	if err != nil {
		if errors.Is(err, store.ErrPlateInUse) || errors.Is(err, store.ErrInvalidEntity) {
			HandleAPIError(w, r, err, "")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create historic", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// Update handles PUT /histories/{id}: overwrites plate and description,
// marks the record arrived and appends the given coordinates.
func (h *HistoricHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateHistoricRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err = h.service.Update(r.Context(), id, req.LicensePlate, req.Description, toCoordinates(req.Coords))
	if err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to update historic", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckIn handles POST /histories/check-out: the vehicle returns, the record
// transitions to arrived exactly once and the final coordinates are appended.
func (h *HistoricHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid historic ID format")
		return
	}

	if err := h.service.CheckIn(r.Context(), id, toCoordinates(req.Coords)); err != nil {
		if MapErrorToStatusCode(err) == http.StatusBadRequest {
			HandleAPIError(w, r, err, "")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to check in vehicle", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /histories/{id}.
func (h *HistoricHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrHistoricNotFound) {
			HandleAPIError(w, r, err, "")
			return
		}
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to delete historic", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCarInUse handles GET /histories/get-car-in-use.
// Responds 200 with the caller's departed historic, or a JSON null when the
// user has no vehicle checked out.
func (h *HistoricHandler) GetCarInUse(w http.ResponseWriter, r *http.Request) {
	identity, ok := getIdentityFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Identity not found in request context")
		return
	}

	record, err := h.service.GetActiveForUser(r.Context(), identity.UserID)
	if err != nil {
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get vehicle in use", err)
		return
	}

	if record == nil {
		RespondWithJSON(w, r, http.StatusOK, nil)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, historicToResponse(record))
}
