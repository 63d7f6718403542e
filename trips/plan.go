package trips

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"tripmind/backend"
	"tripmind/models"
	"tripmind/normalize"
	"tripmind/planner"
	"tripmind/rdx"
	"tripmind/schedule"
	"tripmind/utils"
)

const planTimeout = 90 * time.Second

// POST /api/trip/plan
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req backend.PlanRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Destination == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "destination is required")
		return
	}
	if req.PartySize < 1 {
		req.PartySize = 1
	}

	log := h.log(r)
	// shared by every caller collapsed onto this request
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), planTimeout)
	defer cancel()

	cached, hit, err := h.cache.GetOrFetch(ctx, rdx.Key(req), func(ctx context.Context) (*rdx.CachedPlan, error) {
		raw, err := h.planner.Plan(ctx, req)
		if err != nil {
			return nil, err
		}
		plan := normalize.Normalize(raw)
		if len(plan.Misses) > 0 {
			log.Warn("plan missing entities", zap.Strings("missing", plan.Misses))
			h.events.SchemaDrift(ctx, plan.Misses)
		}
		return &rdx.CachedPlan{Plan: plan, Raw: raw}, nil
	})
	if err != nil {
		var se *backend.StatusError
		if errors.As(err, &se) {
			log.Error("planning backend failed", zap.Int("status", se.Status), zap.String("body", se.Body))
			utils.RespondWithError(w, http.StatusBadGateway, "Planning service error")
			return
		}
		log.Error("plan request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusBadGateway, "Planning service unavailable")
		return
	}

	log.Info("plan ready", zap.String("destination", req.Destination), zap.Bool("cached", hit))
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"plan":   cached.Plan,
		"raw":    cached.Raw,
		"cached": hit,
	})
}

// POST /api/trip/normalize
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var raw map[string]any
	if err := utils.DecodeJSON(r, &raw); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, normalize.Normalize(raw))
}

type adjustRequest struct {
	Schedule []models.ScheduleDay   `json:"schedule"`
	Flight   *models.FlightCandidate `json:"flight"`
}

// POST /api/trip/adjust
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req adjustRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	days := schedule.AdjustWithFlightTimes(req.Schedule, req.Flight)
	if days == nil {
		days = []models.ScheduleDay{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"schedule": days})
}

// draftRequest selects candidates by index. A missing index skips that
// candidate; edits run in order after the flight adjustment.
type draftRequest struct {
	Response    map[string]any  `json:"response"`
	FlightIndex *int            `json:"flight_index"`
	HotelIndex  *int            `json:"hotel_index"`
	Edits       []schedule.Edit `json:"edits"`
}

// POST /api/trip/draft
func (h *Handler) Draft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req draftRequest
	if err := utils.DecodeJSON(r, &req); err != nil || req.Response == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	d := planner.NewDraft(req.Response)
	if req.FlightIndex != nil {
		if err := d.SelectFlight(*req.FlightIndex); err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	if req.HotelIndex != nil {
		if err := d.SelectHotel(*req.HotelIndex); err != nil {
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	for i, e := range req.Edits {
		if err := d.EditSchedule(e.Apply); err != nil {
			h.log(r).Info("draft edit rejected", zap.Int("edit", i), zap.String("op", e.Op), zap.Error(err))
			utils.RespondWithError(w, http.StatusUnprocessableEntity, fmt.Sprintf("edit %d: %v", i, err))
			return
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, d.SavePayload())
}
