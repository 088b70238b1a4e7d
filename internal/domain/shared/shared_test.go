package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityPresets(t *testing.T) {
	player, ok := EntityPreset("player")
	require.True(t, ok)
	assert.Equal(t, Player, player)
	assert.False(t, player.Projectile)

	pearl, ok := EntityPreset("ender_pearl")
	require.True(t, ok)
	assert.Equal(t, EnderPearl, pearl)
	assert.True(t, pearl.Projectile)

	_, ok = EntityPreset("creeper")
	assert.False(t, ok)
}

func TestEntityIsValid(t *testing.T) {
	assert.True(t, Player.IsValid())
	assert.True(t, Entity{}.IsValid())
	assert.False(t, Entity{Width: -1, Height: 2}.IsValid())
}

func TestColorHexForm(t *testing.T) {
	assert.Equal(t, "#7f7f7f", DefaultPortalColor.String())

	c, err := ParseColor("#0aff03")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 10, G: 255, B: 3}, c)

	_, err = ParseColor("0aff03")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}

func TestColorJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(Color{R: 1, G: 2, B: 3})
	require.NoError(t, err)
	assert.Equal(t, `"#010203"`, string(data))

	var back Color
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Color{R: 1, G: 2, B: 3}, back)
}

func TestDomainErrorCarriesCode(t *testing.T) {
	err := ErrEntityWontFit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Entity won't fit")
}
