package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// ErrEmptyDocument is returned for documents without an intrinsic size
var ErrEmptyDocument = errors.New("svg document has no intrinsic size")

var rgbaColor = regexp.MustCompile(`rgba\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*([0-9.]+)\s*\)`)

// Rasterize parses an SVG document and draws it onto an opaque white bitmap
// of the document's intrinsic size, truncated to whole pixels. The document
// is drawn without scaling; text elements are drawn over the shapes. A nil bitmap is returned with the reason when the
// document cannot be parsed or has no area.
func Rasterize(doc string) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(normalizeColors(doc)))
	if err != nil {
		return nil, errors.Wrap(err, "parse svg")
	}

	w, h := int(icon.ViewBox.W), int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyDocument
	}

	texts, err := parseText(doc)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	icon.SetTarget(0, 0, icon.ViewBox.W, icon.ViewBox.H)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	if err := drawText(img, texts); err != nil {
		return nil, err
	}

	return img, nil
}

// WritePNG encodes img as PNG at path
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}

	return errors.Wrapf(f.Close(), "close %s", path)
}

// normalizeColors rewrites CSS rgba() colours, which oksvg does not parse,
// into SVG 1.1 rgb() colours. Fully transparent colours become none.
func normalizeColors(doc string) string {
	return rgbaColor.ReplaceAllStringFunc(doc, func(match string) string {
		parts := rgbaColor.FindStringSubmatch(match)
		if alpha, err := strconv.ParseFloat(parts[4], 64); err == nil && alpha == 0 {
			return "none"
		}
		return fmt.Sprintf("rgb(%s,%s,%s)", parts[1], parts[2], parts[3])
	})
}
