package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var namedColors = map[string]string{
	"black":     "0",
	"red":       "1",
	"green":     "2",
	"yellow":    "3",
	"blue":      "4",
	"magenta":   "5",
	"cyan":      "6",
	"lightgray": "7",
	"lightgrey": "7",
	"gray":      "8",
	"grey":      "8",
	"darkgray":  "8",
	"darkgrey":  "8",
	"white":     "15",
}

// Color resolves a CSS-style color name, hex value or ANSI index.
func Color(v string) lipgloss.Color {
	v = strings.TrimSpace(v)
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(v)
}

// StyleFromAttributes builds the widget frame from style attributes.
// Unknown attributes are ignored; sizing attributes are read with IntAttr.
func StyleFromAttributes(attrs map[string]string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if v, ok := attrs["background"]; ok && v != "" {
		s = s.Background(Color(v))
	}
	if v, ok := attrs["color"]; ok && v != "" {
		s = s.Foreground(Color(v))
	}
	if v, ok := attrs["border"]; ok {
		s = applyBorder(s, v)
	}
	if v, ok := attrs["padding"]; ok {
		if sides := parseSides(v); len(sides) > 0 {
			s = s.Padding(sides...)
		}
	}
	if v, ok := attrs["margin"]; ok {
		if sides := parseSides(v); len(sides) > 0 {
			s = s.Margin(sides...)
		}
	}
	if attrs["fontWeight"] == "bold" {
		s = s.Bold(true)
	}
	return s
}

// IntAttr reads a cell count such as "60" or "60ch", returning def when the
// attribute is absent or malformed.
func IntAttr(attrs map[string]string, name string, def int) int {
	v, ok := attrs[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "ch"))
	if err != nil || n < 0 {
		return def
	}
	return n
}

func applyBorder(s lipgloss.Style, v string) lipgloss.Style {
	fields := strings.Fields(strings.ToLower(v))
	if len(fields) == 0 || fields[0] == "none" {
		return s
	}

	border := lipgloss.NormalBorder()
	for _, f := range fields {
		switch f {
		case "solid", "normal":
			border = lipgloss.NormalBorder()
		case "rounded":
			border = lipgloss.RoundedBorder()
		case "double":
			border = lipgloss.DoubleBorder()
		case "thick":
			border = lipgloss.ThickBorder()
		default:
			if strings.HasSuffix(f, "px") {
				continue
			}
			s = s.BorderForeground(Color(f))
		}
	}
	return s.Border(border)
}

// parseSides reads CSS shorthand ("1", "1 2", "1 2 3", "1 2 3 4").
func parseSides(v string) []int {
	fields := strings.Fields(v)
	if len(fields) == 0 || len(fields) > 4 {
		return nil
	}
	sides := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSuffix(f, "ch"))
		if err != nil || n < 0 {
			return nil
		}
		sides = append(sides, n)
	}
	return sides
}
