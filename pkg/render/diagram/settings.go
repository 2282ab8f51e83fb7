package diagram

import (
	"fmt"

	"github.com/matzehuels/umlsvg/pkg/render/curve"
)

// Default render settings.
const (
	DefaultMargin     = 1.0
	DefaultCurviness  = 0.0
	DefaultFontSize   = 10.0
	DefaultFontColor  = "#000000"
	DefaultFontFamily = "Courier"
)

// Settings configures a render. The zero value is not useful; start from
// DefaultSettings and override fields.
type Settings struct {
	// Margin is added around the content bounding box.
	Margin float64 `json:"margin" toml:"margin"`
	// Curviness in [0, 1] bends edges through their bend points; 0 is straight.
	Curviness float64 `json:"curviness" toml:"curviness"`
	// Bezier selects cubic interpolation instead of rounded corners.
	Bezier bool `json:"bezier,omitempty" toml:"bezier"`

	FontSize   float64 `json:"font_size" toml:"font_size"`
	FontColor  string  `json:"font_color" toml:"font_color"`
	FontFamily string  `json:"font_family" toml:"font_family"`

	// Width and Height override the document size when set.
	Width  string `json:"width,omitempty" toml:"width"`
	Height string `json:"height,omitempty" toml:"height"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Margin:     DefaultMargin,
		Curviness:  DefaultCurviness,
		FontSize:   DefaultFontSize,
		FontColor:  DefaultFontColor,
		FontFamily: DefaultFontFamily,
	}
}

// Mode returns the curve interpolation mode.
func (s Settings) Mode() curve.Mode {
	if s.Bezier {
		return curve.ModeBezier
	}
	return curve.ModeRounded
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Margin < 0 {
		return fmt.Errorf("margin must be >= 0, got %g", s.Margin)
	}
	if s.Curviness < 0 || s.Curviness > 1 {
		return fmt.Errorf("curviness must be in [0,1], got %g", s.Curviness)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be > 0, got %g", s.FontSize)
	}
	return nil
}

// withDefaults fills unset text attributes.
func (s Settings) withDefaults() Settings {
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.FontColor == "" {
		s.FontColor = DefaultFontColor
	}
	if s.FontFamily == "" {
		s.FontFamily = DefaultFontFamily
	}
	return s
}
