package grid_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

func TestDTO_JSON(t *testing.T) {
	g := grid.MustParse(sampleDescriptor).WithLabel("Goblin Caves")
	g.ID = "grid_1"
	g.LastModified = time.Date(2026, time.May, 4, 18, 30, 0, 0, time.UTC)

	data, err := json.Marshal(grid.ToDTO(g))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "grid_1",
		"label": "Goblin Caves",
		"descriptor": "`+sampleDescriptor+`",
		"lastModified": "2026-05-04T18:30:00Z"
	}`, string(data))

	var dto grid.DTO
	require.NoError(t, json.Unmarshal(data, &dto))
	back, err := grid.FromDTO(dto)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestDTO_OmitsUnsavedFields(t *testing.T) {
	g := grid.MustParse("2x2").WithLabel("New")

	data, err := json.Marshal(grid.ToDTO(g))
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"New","descriptor":"2x2:-4:-4:-8"}`, string(data))
}

func TestFromDTO_BadDescriptor(t *testing.T) {
	_, err := grid.FromDTO(grid.DTO{Label: "x", Descriptor: "oops"})
	assert.True(t, errors.IsInvalidArgument(err))
}
