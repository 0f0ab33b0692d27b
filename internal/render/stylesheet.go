package render

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/facturatools/dte-processor/internal/model"
)

// Stylesheet is the only runtime configuration the renderer recognizes. A
// caller-supplied YAML file overrides the bundled defaults field by field.
type Stylesheet struct {
	PageSize     string  `yaml:"page_size"`
	MarginLeft   float64 `yaml:"margin_left"`
	MarginTop    float64 `yaml:"margin_top"`
	MarginRight  float64 `yaml:"margin_right"`
	FontFamily   string  `yaml:"font_family"`
	BaseFontSize float64 `yaml:"base_font_size"`
	TitleSize    float64 `yaml:"title_font_size"`

	// AccentRGB colors the regulatory header box. Red on real documents.
	AccentRGB [3]int `yaml:"accent_rgb"`

	// BarcodeWidth is the printed stamp width in page units (mm).
	BarcodeWidth float64 `yaml:"barcode_width"`

	VerificationURL string `yaml:"verification_url"`
}

// DefaultStylesheet returns the bundled document style.
func DefaultStylesheet() Stylesheet {
	return Stylesheet{
		PageSize:        "Letter",
		MarginLeft:      12,
		MarginTop:       12,
		MarginRight:     12,
		FontFamily:      "Helvetica",
		BaseFontSize:    9,
		TitleSize:       11,
		AccentRGB:       [3]int{200, 0, 0},
		BarcodeWidth:    75,
		VerificationURL: "www.sii.cl",
	}
}

// LoadStylesheet reads a YAML stylesheet, overlaying it on the defaults so
// partial files stay valid.
func LoadStylesheet(path string) (Stylesheet, error) {
	style := DefaultStylesheet()

	data, err := os.ReadFile(path)
	if err != nil {
		return style, model.NewRenderError("stylesheet", "cannot read stylesheet", err)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, model.NewRenderError("stylesheet", "cannot parse stylesheet", err)
	}
	return style, nil
}
