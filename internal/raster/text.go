package raster

import (
	"encoding/xml"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// defaultFontSize is the SVG initial value of font-size in px
const defaultFontSize = 16.0

var rotateTransform = regexp.MustCompile(`rotate\(\s*(-?[0-9.]+)(?:[\s,]+(-?[0-9.]+)[\s,]+(-?[0-9.]+))?\s*\)`)

// textNode is a <text> element; oksvg skips these so they are drawn here.
type textNode struct {
	X, Y  float64
	Body  string
	Fill  color.Color
	Size  float64
	Angle float64 // degrees, clockwise
	CX    float64
	CY    float64
}

// parseText collects the text elements of doc in document order
func parseText(doc string) ([]textNode, error) {
	decoder := xml.NewDecoder(strings.NewReader(doc))

	var nodes []textNode
	var cur *textNode
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse svg text")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "text" {
				node := newTextNode(t.Attr)
				cur = &node
			}
		case xml.CharData:
			if cur != nil {
				cur.Body += string(t)
			}
		case xml.EndElement:
			if t.Name.Local == "text" && cur != nil {
				cur.Body = strings.TrimSpace(cur.Body)
				if cur.Body != "" {
					nodes = append(nodes, *cur)
				}
				cur = nil
			}
		}
	}
}

func newTextNode(attrs []xml.Attr) textNode {
	node := textNode{Fill: color.Black, Size: defaultFontSize}

	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			node.X, _ = strconv.ParseFloat(attr.Value, 64)
		case "y":
			node.Y, _ = strconv.ParseFloat(attr.Value, 64)
		case "fill":
			node.Fill = parseColor(attr.Value, node.Fill)
		case "font-size":
			node.Size = parseLength(attr.Value, node.Size)
		case "style":
			for _, decl := range strings.Split(attr.Value, ";") {
				k, v, ok := strings.Cut(decl, ":")
				if !ok {
					continue
				}
				switch strings.TrimSpace(k) {
				case "fill":
					node.Fill = parseColor(v, node.Fill)
				case "font-size":
					node.Size = parseLength(v, node.Size)
				}
			}
		case "transform":
			if m := rotateTransform.FindStringSubmatch(attr.Value); m != nil {
				node.Angle, _ = strconv.ParseFloat(m[1], 64)
				if m[2] != "" {
					node.CX, _ = strconv.ParseFloat(m[2], 64)
					node.CY, _ = strconv.ParseFloat(m[3], 64)
				}
			}
		}
	}

	return node
}

// parseColor reads #rgb, #rrggbb, rgb() and rgba(). none yields nil.
func parseColor(v string, fallback color.Color) color.Color {
	v = strings.TrimSpace(strings.ToLower(v))

	switch {
	case v == "none" || v == "transparent":
		return nil
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return fallback
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}
	case strings.HasPrefix(v, "rgb"):
		open, end := strings.IndexByte(v, '('), strings.IndexByte(v, ')')
		if open < 0 || end < open {
			return fallback
		}
		parts := strings.Split(v[open+1:end], ",")
		if len(parts) < 3 {
			return fallback
		}
		var c [4]float64
		c[3] = 1
		for i := 0; i < len(parts) && i < 4; i++ {
			f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil {
				return fallback
			}
			c[i] = f
		}
		if c[3] <= 0 {
			return nil
		}
		return color.NRGBA{
			R: uint8(clampByte(c[0])),
			G: uint8(clampByte(c[1])),
			B: uint8(clampByte(c[2])),
			A: uint8(clampByte(c[3] * 255)),
		}
	}
	return fallback
}

func parseLength(v string, fallback float64) float64 {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func clampByte(f float64) float64 {
	return math.Max(0, math.Min(255, math.Round(f)))
}

// drawText renders nodes onto img with the Roboto face bundled by go-chart.
// Sizes are px, so faces are built at 72 DPI.
func drawText(img *image.RGBA, nodes []textNode) error {
	if len(nodes) == 0 {
		return nil
	}

	f, err := gochart.GetDefaultFont()
	if err != nil {
		return errors.Wrap(err, "load font")
	}

	faces := make(map[float64]font.Face)
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	for _, node := range nodes {
		if node.Fill == nil {
			continue
		}

		face, ok := faces[node.Size]
		if !ok {
			face = truetype.NewFace(f, &truetype.Options{Size: node.Size, DPI: 72, Hinting: font.HintingNone})
			faces[node.Size] = face
		}

		if node.Angle == 0 {
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(node.Fill),
				Face: face,
				Dot:  fixed.Point26_6{X: floatToFixed(node.X), Y: floatToFixed(node.Y)},
			}
			d.DrawString(node.Body)
			continue
		}

		drawRotated(img, face, node)
	}

	return nil
}

// drawRotated lays the text out unrotated into a mask, then maps every
// destination pixel back through the inverse rotation.
func drawRotated(img *image.RGBA, face font.Face, node textNode) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	width := font.MeasureString(face, node.Body).Ceil()
	if width <= 0 || ascent+descent <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, ascent+descent))
	(&font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}).DrawString(node.Body)

	// mask pixel (0,0) sits at document point (originX, originY)
	originX := node.X
	originY := node.Y - float64(ascent)

	theta := node.Angle * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	forward := func(x, y float64) (float64, float64) {
		dx, dy := x-node.CX, y-node.CY
		return node.CX + dx*cos - dy*sin, node.CY + dx*sin + dy*cos
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [][2]float64{
		{originX, originY},
		{originX + float64(width), originY},
		{originX, originY + float64(ascent+descent)},
		{originX + float64(width), originY + float64(ascent+descent)},
	} {
		x, y := forward(corner[0], corner[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	bounds := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY))).Intersect(img.Bounds())
	if bounds.Empty() {
		return
	}

	rotated := image.NewAlpha(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx, dy := float64(x)+0.5-node.CX, float64(y)+0.5-node.CY
			sx := node.CX + dx*cos + dy*sin - originX
			sy := node.CY - dx*sin + dy*cos - originY
			mx, my := int(math.Floor(sx)), int(math.Floor(sy))
			if image.Pt(mx, my).In(mask.Bounds()) {
				rotated.SetAlpha(x, y, mask.AlphaAt(mx, my))
			}
		}
	}

	draw.DrawMask(img, bounds, image.NewUniform(node.Fill), image.Point{}, rotated, bounds.Min, draw.Over)
}

func floatToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}
