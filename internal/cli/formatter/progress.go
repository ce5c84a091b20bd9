package formatter

import "strings"

// RenderProgress renders a fixed-width progress bar like "▰▰▰▱▱▱".
// pct is clamped to [0, 1].
func RenderProgress(pct float64, width int) string {
	if width < 1 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := StyleGreen.Render(strings.Repeat("▰", filled)) +
		StyleDim.Render(strings.Repeat("▱", width-filled))
	return bar
}
