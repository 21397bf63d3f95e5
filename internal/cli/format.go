package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

const previewWidth = 8

// formatPalette renders the palette in the requested format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := palette.ToYAML()
		if err != nil {
			return "", fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return string(data), nil
	case "table":
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(validFormats, ", "))
	}
}

func formatHex(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, c := range palette.All() {
		if showPreview {
			sb.WriteString(colour.FormatRecordWithPreview(c, previewWidth))
		} else {
			sb.WriteString(c.Hex())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, c := range palette.All() {
		if showPreview {
			sb.WriteString(colour.ColourPreview(c.RGB, previewWidth))
			sb.WriteString("  ")
		}
		sb.WriteString(c.RGB.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "Hex", "RGB", "Hue", "Sat", "Light", "Intensity", "Area"}
	offset := 0
	if showPreview {
		headers = append([]string{"Preview"}, headers...)
		offset = 1
	}

	table := NewTable(headers)
	table.AlignRight(offset)
	for i := offset + 3; i < len(headers); i++ {
		table.AlignRight(i)
	}

	for i, c := range palette.All() {
		row := []string{
			fmt.Sprintf("%d", i+1),
			c.Hex(),
			fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B),
			fmt.Sprintf("%.0f°", c.Hue*360),
			fmt.Sprintf("%.2f", c.Saturation),
			fmt.Sprintf("%.2f", c.Lightness),
			fmt.Sprintf("%.2f", c.Intensity),
			fmt.Sprintf("%.1f%%", c.Area*100),
		}
		if showPreview {
			row = append([]string{colour.ColourPreview(c.RGB, previewWidth)}, row...)
		}
		table.AddRow(row)
	}
	return table.Render()
}
