package routes

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tripmind/middleware"
	"tripmind/ratelim"
	"tripmind/trips"
)

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", Index)
}

func AddTripRoutes(router *httprouter.Router, h *trips.Handler, auth *middleware.Auth, rateLimiter *ratelim.RateLimiter) {
	router.POST("/api/trip/plan", rateLimiter.Limit(auth.OptionalAuth(h.Plan))) // Generate a plan
	router.POST("/api/trip/normalize", h.Normalize)                             // Extract views from a raw response
	router.POST("/api/trip/adjust", h.Adjust)                                   // Fit a schedule to a flight
	router.POST("/api/trip/draft", auth.OptionalAuth(h.Draft))                  // Preview the save payload
	router.POST("/api/trip/save", rateLimiter.Limit(auth.Authenticate(h.Save))) // Save a trip
	router.GET("/api/trip/saved", auth.Authenticate(h.List))                    // List saved trips
	router.GET("/api/trip/saved/:id", auth.Authenticate(h.Get))                 // Fetch a saved trip
	router.GET("/api/trip/saved/:id/pdf", auth.Authenticate(h.PDF))             // Printable itinerary
	router.DELETE("/api/trip/:id", auth.Authenticate(h.Delete))                 // Delete a saved trip
}
