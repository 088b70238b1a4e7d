package shared

import (
	"encoding/json"
	"fmt"
)

// Color is an RGB color used to represent a portal in clients. It carries
// no geometric meaning.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// DefaultPortalColor is the neutral gray assigned to freshly created
// portals.
var DefaultPortalColor = Color{R: 127, G: 127, B: 127}

// ParseColor reads a "#rrggbb" hex string.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("color must be #rrggbb, got %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("color must be #rrggbb, got %q", s)
	}
	return c, nil
}

// String returns the "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as its "#rrggbb" form.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a "#rrggbb" string.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
