package render

import (
	"image/color"
	"sort"

	"github.com/ec-intl/chartly/pkg/errors"
)

// namedColors maps the color names accepted in chart configs to RGBA
// values. The set covers the defaults of every chart kind plus the
// common names figure documents tend to use.
var namedColors = map[string]color.RGBA{
	"black":           {0x00, 0x00, 0x00, 0xff},
	"white":           {0xff, 0xff, 0xff, 0xff},
	"gray":            {0x80, 0x80, 0x80, 0xff},
	"red":             {0xff, 0x00, 0x00, 0xff},
	"green":           {0x00, 0x80, 0x00, 0xff},
	"blue":            {0x00, 0x00, 0xff, 0xff},
	"navy":            {0x00, 0x00, 0x80, 0xff},
	"dodgerblue":      {0x1e, 0x90, 0xff, 0xff},
	"skyblue":         {0x87, 0xce, 0xeb, 0xff},
	"slateblue":       {0x6a, 0x5a, 0xcd, 0xff},
	"plum":            {0xdd, 0xa0, 0xdd, 0xff},
	"orange":          {0xff, 0xa5, 0x00, 0xff},
	"orangered":       {0xff, 0x45, 0x00, 0xff},
	"pink":            {0xff, 0xc0, 0xcb, 0xff},
	"lightpink":       {0xff, 0xb6, 0xc1, 0xff},
	"mediumvioletred": {0xc7, 0x15, 0x85, 0xff},
	"purple":          {0x80, 0x00, 0x80, 0xff},
	"teal":            {0x00, 0x80, 0x80, 0xff},
	"gold":            {0xff, 0xd7, 0x00, 0xff},
	"crimson":         {0xdc, 0x14, 0x3c, 0xff},
	"darkgreen":       {0x00, 0x64, 0x00, 0xff},
	"seagreen":        {0x2e, 0x8b, 0x57, 0xff},
}

// ParseColor resolves a color name from a chart config.
// Returns an INVALID_CONFIG error for unknown names.
func ParseColor(name string) (color.RGBA, error) {
	c, ok := namedColors[name]
	if !ok {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidConfig, "unknown color: %q", name)
	}
	return c, nil
}

// ColorNames returns the accepted color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
