// Package palette parses CSS color strings into the premultiplied colors the
// renderer draws with.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Parse accepts any CSS color: names, hex forms, and the rgb(), hsl(), hwb()
// functions with comma or space separated arguments.
func Parse(s string) (color.RGBA, error) {
	if strings.TrimSpace(s) == "" {
		return color.RGBA{}, errors.New("empty color")
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return premultiply(color.NRGBA{R: r, G: g, B: b, A: a}), nil
}

// premultiply converts straight alpha to the premultiplied form color.RGBA uses.
func premultiply(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
