package editcontrol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"sketchedit/internal/domain"
)

// ParseName accepts any non-blank name
func ParseName(text string) (string, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	return name, nil
}

// ParseNumber evaluates text as an expression
func ParseNumber(text string) (float64, error) {
	return Eval(text)
}

// ParsePositive evaluates text and requires a result above zero
func ParsePositive(text, what string) (float64, error) {
	v, err := Eval(text)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %s must be greater than zero", ErrValidation, what)
	}
	return v, nil
}

// ParseNonZero evaluates text and rejects values too close to zero
func ParseNonZero(text, what string) (float64, error) {
	v, err := Eval(text)
	if err != nil {
		return 0, err
	}
	if v > -1e-6 && v < 1e-6 {
		return 0, fmt.Errorf("%w: %s cannot be zero", ErrValidation, what)
	}
	return v, nil
}

// ParseInt parses a whole number and clamps it to [lo, hi]
func ParseInt(text string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrValidation, text)
	}
	return min(max(v, lo), hi), nil
}

// ParseColor accepts "#rrggbb" or three components "r, g, b" in 0..1
func ParseColor(text string) (colorful.Color, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		c, err := colorful.Hex(text)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("%w: bad color %q", ErrValidation, text)
		}
		return c, nil
	}
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return colorful.Color{}, fmt.Errorf("%w: specify color as r, g, b or #rrggbb", ErrValidation)
	}
	var rgb [3]float64
	for i, p := range parts {
		v, err := Eval(p)
		if err != nil {
			return colorful.Color{}, err
		}
		rgb[i] = v
	}
	c := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}
	if !c.IsValid() {
		return colorful.Color{}, fmt.Errorf("%w: color components must be between 0 and 1", ErrValidation)
	}
	return c, nil
}

// ParseVector accepts two comma-separated expressions "x, y"
func ParseVector(text string) (domain.Vector, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return domain.Vector{}, fmt.Errorf("%w: specify a point as x, y", ErrValidation)
	}
	x, err := Eval(parts[0])
	if err != nil {
		return domain.Vector{}, err
	}
	y, err := Eval(parts[1])
	if err != nil {
		return domain.Vector{}, err
	}
	return domain.Vector{X: x, Y: y}, nil
}

// FormatColor renders a color the way ParseColor reads it
func FormatColor(c colorful.Color) string {
	return c.Clamped().Hex()
}
