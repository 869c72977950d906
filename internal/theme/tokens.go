package theme

// Tokens supplies presentation values to view construction. The boundary's
// recovery view consumes these instead of hard-coding styling so appearance
// stays the theme system's concern.
type Tokens struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Type    string            `json:"type"` // "dark", "light", "custom"
	Colors  map[string]string `json:"colors"`
	Spacing map[string]string `json:"spacing,omitempty"`
	Fonts   map[string]string `json:"fonts,omitempty"`
}

// Color returns a named color, falling back to the given default.
func (t Tokens) Color(name, fallback string) string {
	if v, ok := t.Colors[name]; ok {
		return v
	}
	return fallback
}

// Space returns a named spacing value, falling back to the given default.
func (t Tokens) Space(name, fallback string) string {
	if v, ok := t.Spacing[name]; ok {
		return v
	}
	return fallback
}

// Dark returns the default dark token set.
func Dark() Tokens {
	return Tokens{
		ID:   "dark",
		Name: "Dark",
		Type: "dark",
		Colors: map[string]string{
			"background":     "#1e1e2e",
			"surface":        "#27273a",
			"text":           "#cdd6f4",
			"text_muted":     "#9399b2",
			"accent":         "#89b4fa",
			"danger":         "#f38ba8",
			"danger_surface": "#311b2b",
			"border":         "#45475a",
		},
		Spacing: map[string]string{
			"sm": "8px",
			"md": "16px",
			"lg": "24px",
		},
		Fonts: map[string]string{
			"body": "Inter, sans-serif",
			"mono": "JetBrains Mono, monospace",
		},
	}
}

// Light returns the default light token set.
func Light() Tokens {
	return Tokens{
		ID:   "light",
		Name: "Light",
		Type: "light",
		Colors: map[string]string{
			"background":     "#ffffff",
			"surface":        "#f5f5fa",
			"text":           "#1e1e2e",
			"text_muted":     "#6c6f85",
			"accent":         "#1e66f5",
			"danger":         "#d20f39",
			"danger_surface": "#fdeaee",
			"border":         "#dcdfe8",
		},
		Spacing: map[string]string{
			"sm": "8px",
			"md": "16px",
			"lg": "24px",
		},
		Fonts: map[string]string{
			"body": "Inter, sans-serif",
			"mono": "JetBrains Mono, monospace",
		},
	}
}

// Default returns the token set used when no theme is selected.
func Default() Tokens {
	return Dark()
}
