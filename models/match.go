package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jellyfish/api/colors"
)

// ColorsRequest is the body of POST /api/colors
type ColorsRequest struct {
	BackgroundColor string  `json:"backgroundColor"`
	ForegroundColor Targets `json:"foregroundColor"`
}

// ColorsResponse is returned by POST /api/colors
type ColorsResponse struct {
	BackgroundColor string               `json:"backgroundColor"`
	Results         []colors.MatchResult `json:"results"`
	Status          string               `json:"status"`
}

// ScaleRequest is the body of POST /api/colors/scale
type ScaleRequest struct {
	BackgroundColor string   `json:"backgroundColor"`
	Colors          []string `json:"colors"`
	Prefix          string   `json:"prefix"`
}

type ScaleResponse struct {
	BackgroundColor string   `json:"backgroundColor"`
	Variables       []string `json:"variables"`
	Status          string   `json:"status"`
}

// Targets accepts either a single JSON string or an array of strings
type Targets []string

func (t *Targets) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		// an empty string counts as missing
		if single == "" {
			*t = nil
		} else {
			*t = Targets{single}
		}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("foregroundColor must be a string or an array of strings")
	}
	*t = many
	return nil
}

// MatchRecord is one stored match result
type MatchRecord struct {
	ID              string    `json:"id" db:"id"`
	RequestID       string    `json:"requestId" db:"request_id"`
	BackgroundColor string    `json:"backgroundColor" db:"background_color"`
	OriginalHex     string    `json:"originalHex" db:"original_hex"`
	R               int       `json:"r" db:"r"`
	G               int       `json:"g" db:"g"`
	B               int       `json:"b" db:"b"`
	A               float64   `json:"a" db:"a"`
	RGBA            string    `json:"rgba" db:"rgba"`
	// Position is the index of the result within its request
	Position        int       `json:"position" db:"position"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

func (record MatchRecord) GenerateKey() string {
	return uuid.New().String()
}

// NewMatchRecords builds one record per result, all sharing requestID and a
// creation time. Position keeps them in request order.
func NewMatchRecords(requestID, background string, results []colors.MatchResult) []MatchRecord {
	records := make([]MatchRecord, 0, len(results))
	now := time.Now()
	for i, result := range results {
		record := MatchRecord{
			ID:              MatchRecord{}.GenerateKey(),
			RequestID:       requestID,
			BackgroundColor: background,
			OriginalHex:     result.OriginalHex,
			R:               result.RGBAValues.R,
			G:               result.RGBAValues.G,
			B:               result.RGBAValues.B,
			A:               result.RGBAValues.A,
			RGBA:            result.RGBA,
			Position:        i,
			CreatedAt:       now,
		}
		records = append(records, record)
	}
	return records
}
