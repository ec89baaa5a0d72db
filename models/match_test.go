package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jellyfish/api/colors"
)

func TestTargetsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Targets
	}{
		{"single", `{"foregroundColor": "#ff0000"}`, Targets{"#ff0000"}},
		{"list", `{"foregroundColor": ["#ff0000", "#0f0", "#ff0000"]}`, Targets{"#ff0000", "#0f0", "#ff0000"}},
		{"empty string", `{"foregroundColor": ""}`, nil},
		{"null", `{"foregroundColor": null}`, nil},
		{"missing", `{}`, nil},
		{"empty list", `{"foregroundColor": []}`, Targets{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ColorsRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.ForegroundColor)
		})
	}
}

func TestTargetsUnmarshalRejectsOtherTypes(t *testing.T) {
	var req ColorsRequest
	assert.Error(t, json.Unmarshal([]byte(`{"foregroundColor": 12}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"foregroundColor": [1, 2]}`), &req))
}

func TestNewMatchRecords(t *testing.T) {
	results, err := colors.MatchMany("#ffffff", "#f00", "#7F66FF")
	require.NoError(t, err)

	records := NewMatchRecords("req-1", "#ffffff", results)
	require.Len(t, records, 2)

	assert.Equal(t, "#f00", records[0].OriginalHex)
	assert.Equal(t, "rgba(248, 0, 0, 1)", records[0].RGBA)
	assert.Equal(t, 1.0, records[0].A)
	assert.Equal(t, "#7F66FF", records[1].OriginalHex)
	assert.Equal(t, 0.62, records[1].A)
	assert.NotEqual(t, records[0].ID, records[1].ID)
	assert.Equal(t, 0, records[0].Position)
	assert.Equal(t, 1, records[1].Position)
	assert.Equal(t, records[0].CreatedAt, records[1].CreatedAt)
	for _, record := range records {
		assert.Equal(t, "req-1", record.RequestID)
		assert.Equal(t, "#ffffff", record.BackgroundColor)
		assert.False(t, record.CreatedAt.IsZero())
	}
}

func TestAdminToken(t *testing.T) {
	token, err := NewAdminToken("secret", time.Minute)
	require.NoError(t, err)
	assert.True(t, token.Expiry.After(time.Now()))

	claims, err := ValidateJWTToken(token.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, AdminScope, claims.Scope)
	assert.Equal(t, "admin", claims.Subject)

	_, err = ValidateJWTToken(token.Token, "other")
	assert.Error(t, err)

	expired, err := NewAdminToken("secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateJWTToken(expired.Token, "secret")
	assert.Error(t, err)
}
