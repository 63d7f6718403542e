package utils

import (
	"net/http"

	"tripmind/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		return ""
	}
	return userID
}

func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(globals.RequestIDKey).(string)
	return id
}
