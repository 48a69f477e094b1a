package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	var in struct {
		Day   *dto.Date `json:"day"`
		Stamp *dto.Date `json:"stamp"`
		Empty *dto.Date `json:"empty"`
	}
	raw := `{"day":"2024-03-05","stamp":"2024-03-05T10:30:00-05:00","empty":null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	require.NotNil(t, in.Day)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), in.Day.Time)
	require.NotNil(t, in.Stamp)
	assert.Equal(t, time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC), in.Stamp.Time, "se normaliza a UTC")
	assert.Nil(t, in.Empty)
}

func TestDate_FormatoInvalido(t *testing.T) {
	var d dto.Date
	err := json.Unmarshal([]byte(`"05/03/2024"`), &d)
	assert.Error(t, err)
}
