package stamp

import (
	"fmt"
	"image"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/pdf417"

	"github.com/facturatools/dte-processor/internal/model"
)

// securityLevel 0 carries no built-in redundancy: the payload is
// transmitted exactly, and any corruption of the stamp text surfaces as a
// verification failure instead of being silently repaired.
const securityLevel = 0

// Options controls the projection of the barcode matrix into graphics.
type Options struct {
	// Scale is the module width in output units.
	Scale int
	// Ratio is the row height as a multiple of the module width.
	Ratio int
}

// DefaultOptions mirrors the proportions used on printed documents.
var DefaultOptions = Options{Scale: 2, Ratio: 3}

// Barcode is an encoded stamp payload, renderable as SVG or as a raster
// image for PDF embedding.
type Barcode struct {
	matrix barcode.Barcode
	scale  int
	ratio  int
}

// Encode canonicalizes the stamp text and encodes it as a PDF417 symbol.
// An empty payload or an encoder failure yields a StampError; the encoding
// is deterministic, so identical stamp text always produces an identical
// symbol.
func Encode(ted string, opts Options) (*Barcode, error) {
	payload := Canonicalize(ted)
	if payload == "" {
		return nil, model.NewStampError("empty stamp payload", nil)
	}

	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions.Scale
	}
	if opts.Ratio <= 0 {
		opts.Ratio = DefaultOptions.Ratio
	}

	matrix, err := pdf417.Encode(payload, securityLevel)
	if err != nil {
		return nil, model.NewStampError("payload not encodable", err)
	}

	return &Barcode{matrix: matrix, scale: opts.Scale, ratio: opts.Ratio}, nil
}

// Image renders the symbol as a raster image, one module per pixel scaled
// by the configured geometry.
func (b *Barcode) Image() (image.Image, error) {
	bounds := b.matrix.Bounds()
	scaled, err := barcode.Scale(b.matrix,
		bounds.Dx()*b.scale, bounds.Dy()*b.scale*b.ratio)
	if err != nil {
		return nil, model.NewStampError("cannot scale barcode", err)
	}
	return scaled, nil
}

// SVG renders the symbol as a scalable vector image. Horizontal runs of
// dark modules collapse into single rectangles.
func (b *Barcode) SVG() string {
	bounds := b.matrix.Bounds()
	width := bounds.Dx() * b.scale
	height := bounds.Dy() * b.scale * b.ratio
	rowHeight := b.scale * b.ratio

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height)
	sb.WriteString(`<rect width="100%" height="100%" fill="#fff"/>`)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		run := -1
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			dark := x < bounds.Max.X && isDark(b.matrix, x, y)
			switch {
			case dark && run < 0:
				run = x
			case !dark && run >= 0:
				fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d"/>`,
					(run-bounds.Min.X)*b.scale, (y-bounds.Min.Y)*rowHeight,
					(x-run)*b.scale, rowHeight)
				run = -1
			}
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func isDark(img image.Image, x, y int) bool {
	r, g, bl, _ := img.At(x, y).RGBA()
	return r == 0 && g == 0 && bl == 0
}
