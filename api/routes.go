package api

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/jellyfish/api/metrics"
)

var localhostPattern = regexp.MustCompile(`^localhost:\d+$`)

func cleanOrigin(origin string) string {
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		return u.Host
	}
	cleanedOrigin := origin
	if idx := strings.Index(cleanedOrigin, "/"); idx != -1 {
		cleanedOrigin = cleanedOrigin[:idx]
	}
	return cleanedOrigin
}

func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	cleanedRequest := cleanOrigin(origin)

	// Allow localhost for development
	if localhostPattern.MatchString(cleanedRequest) {
		return true
	}

	for _, allowed := range allowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || cleanOrigin(allowed) == cleanedRequest {
			return true
		}
	}

	return false
}

func wrapMuxWithCorsAndOrigins(mux *http.ServeMux, app *Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin == "" || app.Config.DevMode || isAllowedOrigin(origin, app.Config.AllowedOrigins) {
			handleCors(mux.ServeHTTP)(w, r)
			return
		}

		writeError(w, http.StatusForbidden, HandlerError{
			ErrorName:        "Origin Not Allowed",
			Description:      "origin not allowed: " + cleanOrigin(origin),
			PossibleSolution: "Add the origin to ALLOWED_ORIGINS",
		})
	})
}

func (app *Application) BuildRoutes(mux *http.ServeMux) http.Handler {
	// Public endpoints
	mux.HandleFunc("/", instrument("/", app.home))
	mux.HandleFunc("/api/colors", instrument("/api/colors", app.processColors))
	mux.HandleFunc("/api/colors/", instrument("/api/colors", app.processColors))
	mux.HandleFunc("/api/colors/scale", instrument("/api/colors/scale", app.generateScale))
	mux.HandleFunc("/v1/admin/token", instrument("/v1/admin/token", app.adminToken))
	mux.Handle("/metrics", metrics.Handler())

	// Admin endpoints
	mux.HandleFunc("/v1/admin/matches", instrument("/v1/admin/matches", app.verifyPermissions(app.getMatchHistory)))
	mux.HandleFunc("/v1/admin/matches/{id}", instrument("/v1/admin/matches/{id}", app.verifyPermissions(app.getMatchRecord)))

	return withRequestID(wrapMuxWithCorsAndOrigins(mux, app))
}
