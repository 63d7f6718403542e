package routes

import (
	"github.com/julienschmidt/httprouter"

	"tripmind/middleware"
	"tripmind/ratelim"
	"tripmind/trips"
)

func RoutesWrapper(router *httprouter.Router, h *trips.Handler, auth *middleware.Auth, rateLimiter *ratelim.RateLimiter) {
	AddHealthRoutes(router)
	AddTripRoutes(router, h, auth, rateLimiter)
}
