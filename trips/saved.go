package trips

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"tripmind/db"
	"tripmind/models"
	"tripmind/utils"
)

const storeTimeout = 5 * time.Second

// POST /api/trip/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.SaveTripRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}
	if req.HeadCount < 1 {
		req.HeadCount = 1
	}
	if req.Schedule == nil {
		req.Schedule = []models.ScheduleDay{}
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	trip, err := h.store.Save(ctx, userID, req)
	if err != nil {
		h.log(r).Error("save trip", zap.String("user_id", userID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving trip")
		return
	}
	h.events.Saved(ctx, userID, trip.TripID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"trip_id": trip.TripID})
}

// GET /api/trip/saved
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	trips, err := h.store.List(ctx, userID)
	if err != nil {
		h.log(r).Error("list trips", zap.String("user_id", userID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trips")
		return
	}
	if trips == nil {
		trips = []models.TripSummary{}
	}
	utils.RespondWithJSON(w, http.StatusOK, trips)
}

// GET /api/trip/saved/:id
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip, ok := h.loadTrip(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BuildView(trip))
}

// DELETE /api/trip/:id
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	tripID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	err := h.store.Delete(ctx, userID, tripID)
	if errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		h.log(r).Error("delete trip", zap.String("trip_id", tripID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting trip")
		return
	}
	h.events.Deleted(ctx, userID, tripID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Trip deleted successfully"})
}

// GET /api/trip/saved/:id/pdf
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	trip, ok := h.loadTrip(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	shareURL := strings.TrimRight(h.publicURL, "/") + "/trip/" + trip.TripID
	out, err := h.printer.TripPDF(BuildView(trip), shareURL)
	if err != nil {
		h.log(r).Error("render trip pdf", zap.String("trip_id", trip.TripID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+trip.TripID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

func (h *Handler) loadTrip(w http.ResponseWriter, r *http.Request, tripID string) (*models.SavedTrip, bool) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	trip, err := h.store.Get(ctx, userID, tripID)
	if errors.Is(err, db.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return nil, false
	}
	if err != nil {
		h.log(r).Error("load trip", zap.String("trip_id", tripID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return nil, false
	}
	return trip, true
}
