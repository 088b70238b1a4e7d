package shared

import "strings"

// Entity describes a teleporting entity's hitbox.
//
// An entity's position is at the bottom center of its hitbox.
type Entity struct {
	// Width is the extent of the hitbox along the X and Z axes.
	Width float64 `json:"width"`
	// Height is the extent of the hitbox along the Y axis.
	Height float64 `json:"height"`
	// Projectile marks entities that can clip into the portal frame
	// instead of having to pass through the open interior.
	Projectile bool `json:"projectile"`
}

// Player is the default teleporting entity.
var Player = Entity{Width: 0.6, Height: 1.8}

// EnderPearl is the classic projectile used to slip through tight portals.
var EnderPearl = Entity{Width: 0.25, Height: 0.25, Projectile: true}

// EntityPreset returns the hitbox registered under the given preset name.
func EntityPreset(name string) (Entity, bool) {
	switch strings.ToLower(name) {
	case "player":
		return Player, true
	case "ender_pearl", "ender-pearl", "enderpearl":
		return EnderPearl, true
	default:
		return Entity{}, false
	}
}

// IsValid reports whether the hitbox extents are non-negative.
func (e Entity) IsValid() bool {
	return e.Width >= 0 && e.Height >= 0
}
