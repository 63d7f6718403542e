// Package trips serves the trip planning HTTP API.
package trips

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"tripmind/backend"
	"tripmind/models"
	"tripmind/printout"
	"tripmind/rdx"
	"tripmind/utils"
)

// TripRepository stores saved trips.
type TripRepository interface {
	Save(ctx context.Context, userID string, req models.SaveTripRequest) (*models.SavedTrip, error)
	Get(ctx context.Context, userID, tripID string) (*models.SavedTrip, error)
	List(ctx context.Context, userID string) ([]models.TripSummary, error)
	Delete(ctx context.Context, userID, tripID string) error
}

// Planner generates raw plans.
type Planner interface {
	Plan(ctx context.Context, req backend.PlanRequest) (map[string]any, error)
}

// PlanCache remembers normalized plans per request.
type PlanCache interface {
	GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (*rdx.CachedPlan, error)) (*rdx.CachedPlan, bool, error)
}

// Events receives trip lifecycle notifications.
type Events interface {
	Saved(ctx context.Context, userID, tripID string)
	Deleted(ctx context.Context, userID, tripID string)
	SchemaDrift(ctx context.Context, missing []string)
}

// Handler holds the dependencies of the trip routes.
type Handler struct {
	store     TripRepository
	planner   Planner
	cache     PlanCache
	events    Events
	printer   *printout.Printer
	publicURL string
	logger    *zap.Logger
}

// Deps groups what NewHandler needs.
type Deps struct {
	Store     TripRepository
	Planner   Planner
	Cache     PlanCache
	Events    Events
	Printer   *printout.Printer
	PublicURL string
	Logger    *zap.Logger
}

func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Printer == nil {
		d.Printer = printout.New("")
	}
	return &Handler{
		store:     d.Store,
		planner:   d.Planner,
		cache:     d.Cache,
		events:    d.Events,
		printer:   d.Printer,
		publicURL: d.PublicURL,
		logger:    d.Logger,
	}
}

func (h *Handler) log(r *http.Request) *zap.Logger {
	if id := utils.GetRequestID(r); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
