package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jellyfish/api/colors"
	"github.com/jellyfish/api/datastore"
	"github.com/jellyfish/api/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	maxBodyBytes        = 1 << 20
)

// GET /
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Jellyfish Backend",
		"status":  "success",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeColorsRequest validates the body of POST /api/colors the same way for
// every client, returning the message to show on failure
func decodeColorsRequest(w http.ResponseWriter, r *http.Request) (models.ColorsRequest, error) {
	if !isJSONRequest(r) {
		return models.ColorsRequest{}, errors.New("Content-Type must be application/json")
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&fields); err != nil || len(fields) == 0 {
		return models.ColorsRequest{}, errors.New("No JSON data provided")
	}

	var req models.ColorsRequest
	if raw, ok := fields["backgroundColor"]; ok {
		if err := json.Unmarshal(raw, &req.BackgroundColor); err != nil {
			return models.ColorsRequest{}, fmt.Errorf("Invalid backgroundColor format: %s. Expected format: #ffffff or #fff", raw)
		}
	}
	if raw, ok := fields["foregroundColor"]; ok {
		if err := json.Unmarshal(raw, &req.ForegroundColor); err != nil {
			return models.ColorsRequest{}, err
		}
	}

	if req.BackgroundColor == "" {
		return models.ColorsRequest{}, errors.New("backgroundColor is required")
	}
	if len(req.ForegroundColor) == 0 {
		return models.ColorsRequest{}, errors.New("foregroundColor is required")
	}
	if !colors.IsValidHex(req.BackgroundColor) {
		return models.ColorsRequest{}, fmt.Errorf("Invalid backgroundColor format: %s. Expected format: #ffffff or #fff", req.BackgroundColor)
	}
	for i, color := range req.ForegroundColor {
		if !colors.IsValidHex(color) {
			return models.ColorsRequest{}, fmt.Errorf("Invalid foregroundColor format at index %d: %s. Expected format: #ffffff or #fff", i, color)
		}
	}

	return req, nil
}

// POST /api/colors - Match one or many colors against a background
func (app *Application) processColors(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/colors" && r.URL.Path != "/api/colors/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	req, err := decodeColorsRequest(w, r)
	if err != nil {
		app.badRequest(w, r, err)
		return
	}

	background := colors.NormalizeHex(req.BackgroundColor)
	targets := make([]string, len(req.ForegroundColor))
	for i, color := range req.ForegroundColor {
		targets[i] = strings.TrimSpace(color)
	}

	results, err := app.Batcher.MatchMany(background, targets...)
	if errors.Is(err, colors.ErrInvalidHex) {
		app.badRequest(w, r, err)
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.recordHistory(requestID(r), background, results)

	writeJSON(w, http.StatusOK, models.ColorsResponse{
		BackgroundColor: background,
		Results:         results,
		Status:          "success",
	})
}

// recordHistory stores results when history is enabled. Failures are logged
// and never reach the client.
func (app *Application) recordHistory(requestID, background string, results []colors.MatchResult) {
	if app.HistoryRepo == nil {
		return
	}
	records := models.NewMatchRecords(requestID, background, results)
	if err := app.HistoryRepo.Create(records); err != nil {
		log.Printf("failed to record match history for request %s: %v", requestID, err)
	}
}

// POST /api/colors/scale - Render a color scale as CSS custom properties
func (app *Application) generateScale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	if !isJSONRequest(r) {
		app.badRequest(w, r, errors.New("Content-Type must be application/json"))
		return
	}

	var req models.ScaleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if len(req.Colors) == 0 {
		app.badRequest(w, r, errors.New("colors is required"))
		return
	}
	if req.BackgroundColor == "" {
		req.BackgroundColor = colors.DefaultScaleBackground
	}
	if !colors.IsValidHex(req.BackgroundColor) {
		app.badRequest(w, r, fmt.Errorf("Invalid backgroundColor format: %s. Expected format: #ffffff or #fff", req.BackgroundColor))
		return
	}
	for i, color := range req.Colors {
		if !colors.IsValidHex(color) {
			app.badRequest(w, r, fmt.Errorf("Invalid color format at index %d: %s. Expected format: #ffffff or #fff", i, color))
			return
		}
		req.Colors[i] = strings.TrimSpace(color)
	}

	background := colors.NormalizeHex(req.BackgroundColor)
	variables, err := colors.GenerateAlphaScale(app.Batcher, req.Colors, background, req.Prefix)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ScaleResponse{
		BackgroundColor: background,
		Variables:       variables,
		Status:          "success",
	})
}

// POST /v1/admin/token - Exchange the admin password for a bearer token
func (app *Application) adminToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.requirePostMethod(w, r, ErrPOST)
		return
	}

	if app.Config.AdminPasswordHash == "" || app.Config.JwtSecret == "" {
		app.serviceUnavailable(w, r, ErrAdminDisabled)
		return
	}

	var req models.TokenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		app.badJSONRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(app.Config.AdminPasswordHash), []byte(req.Password)); err != nil {
		app.invalidCredentials(w, r, errors.New("invalid admin password"))
		return
	}

	token, err := models.NewAdminToken(app.Config.JwtSecret, time.Duration(app.Config.JwtAccessDuration)*time.Second)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}

// GET /v1/admin/matches - List recent match history (Admin only)
func (app *Application) getMatchHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	if app.HistoryRepo == nil {
		app.serviceUnavailable(w, r, errors.New("match history is disabled"))
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequest(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	records, err := app.HistoryRepo.GetRecent(limit)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GET /v1/admin/matches/{id} - Fetch one stored match (Admin only)
func (app *Application) getMatchRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		app.requireGetMethod(w, r, ErrGET)
		return
	}

	if app.HistoryRepo == nil {
		app.serviceUnavailable(w, r, errors.New("match history is disabled"))
		return
	}

	id := r.PathValue("id")
	record, err := app.HistoryRepo.Get(id)
	var noRows datastore.NoRowsError
	if errors.As(err, &noRows) {
		app.notFound(w, r, fmt.Errorf("match %s not found", id))
		return
	}
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
