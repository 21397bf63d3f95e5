package colour

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ColorRecord is one extracted palette entry.
type ColorRecord struct {
	RGB

	// Hue, Saturation and Lightness are in [0,1]; hue 1.0 is a full turn.
	Hue        float64
	Saturation float64
	Lightness  float64

	// Intensity is the mean of the normalised RGB channels.
	Intensity float64

	// Area is the share of alpha-passing sampled pixels covered by the colour.
	Area float64
}

// Score is the secondary ranking used by SortByScore. It favours bright
// colours that do not dominate the image.
func (r ColorRecord) Score() float64 {
	return (r.Intensity + 0.1) * (0.9 - r.Area)
}

// newRecord builds the output record for a merged bucket.
func newRecord(a ColorAggregate, total float64) ColorRecord {
	area := 0.0
	if total > 0 {
		area = clamp01(a.Weight / total)
	}
	return ColorRecord{
		RGB: RGB{
			R: toByte(a.Colour.R),
			G: toByte(a.Colour.G),
			B: toByte(a.Colour.B),
		},
		Hue:        a.Hue,
		Saturation: a.Saturation,
		Lightness:  a.Lightness,
		Intensity:  clamp01((a.Colour.R + a.Colour.G + a.Colour.B) / 3.0),
		Area:       area,
	}
}

// Palette is an ordered list of extracted colours.
type Palette struct {
	Colors []ColorRecord
}

// NewPalette creates a new Palette with the given records.
func NewPalette(colors []ColorRecord) *Palette {
	return &Palette{Colors: colors}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// All returns an iterator over all records in the palette.
func (p *Palette) All() func(func(int, ColorRecord) bool) {
	return func(yield func(int, ColorRecord) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// TotalArea returns the sum of all record areas.
func (p *Palette) TotalArea() float64 {
	var total float64
	for _, c := range p.Colors {
		total += c.Area
	}
	return total
}

// SortByArea returns a copy of the palette ordered by area, largest first.
func (p *Palette) SortByArea() *Palette {
	sorted := slices.Clone(p.Colors)
	slices.SortStableFunc(sorted, func(a, b ColorRecord) int {
		return cmp.Compare(b.Area, a.Area)
	})
	return NewPalette(sorted)
}

// SortByScore returns a copy of the palette ordered by Score, highest first.
func (p *Palette) SortByScore() *Palette {
	sorted := slices.Clone(p.Colors)
	slices.SortStableFunc(sorted, func(a, b ColorRecord) int {
		return cmp.Compare(b.Score(), a.Score())
	})
	return NewPalette(sorted)
}

// ToHex converts the palette colours to hex strings.
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ColorJSON represents a record in JSON and YAML output.
type ColorJSON struct {
	Hex        string  `json:"hex" yaml:"hex"`
	Red        uint8   `json:"red" yaml:"red"`
	Green      uint8   `json:"green" yaml:"green"`
	Blue       uint8   `json:"blue" yaml:"blue"`
	Hue        float64 `json:"hue" yaml:"hue"`
	Intensity  float64 `json:"intensity" yaml:"intensity"`
	Lightness  float64 `json:"lightness" yaml:"lightness"`
	Saturation float64 `json:"saturation" yaml:"saturation"`
	Area       float64 `json:"area" yaml:"area"`
}

func (p *Palette) serialisable() []ColorJSON {
	out := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = ColorJSON{
			Hex:        c.Hex(),
			Red:        c.R,
			Green:      c.G,
			Blue:       c.B,
			Hue:        c.Hue,
			Intensity:  c.Intensity,
			Lightness:  c.Lightness,
			Saturation: c.Saturation,
			Area:       c.Area,
		}
	}
	return out
}

// ToJSON converts the palette to a JSON array.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.serialisable(), "", "  ")
}

// ToYAML converts the palette to a YAML sequence.
func (p *Palette) ToYAML() ([]byte, error) {
	return yaml.Marshal(p.serialisable())
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s) area %.1f%%\n", i+1, c.Hex(), c.RGB.String(), c.Area*100)
	}
	return sb.String()
}
