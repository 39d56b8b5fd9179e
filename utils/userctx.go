package utils

import (
	"net/http"

	"milonga/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRolesFromRequest(r *http.Request) []string {
	roles, ok := r.Context().Value(globals.RolesKey).([]string)
	if !ok {
		return nil
	}
	return roles
}
