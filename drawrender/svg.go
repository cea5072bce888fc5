package drawrender

import (
	"image/color"
	"io"
	"strconv"

	"github.com/soypat/svg3d"
)

var _ svg3d.Drawable = (*SVG)(nil)

// SVG is a drawing surface that writes its elements as an SVG document.
type SVG struct {
	store
	width, height float64
	buf           []byte
}

// NewSVG returns an empty SVG drawing surface of the given size in pixels.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height}
}

// Size returns the document width and height.
func (s *SVG) Size() (width, height float64) { return s.width, s.height }

// WriteTo writes a standalone SVG document with all placed elements in append order.
// Points are written as circles and paths as path elements.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	b := s.buf[:0]
	b = append(b, `<svg xmlns="http://www.w3.org/2000/svg" width="`...)
	b = appendFloat(b, s.width)
	b = append(b, `" height="`...)
	b = appendFloat(b, s.height)
	b = append(b, "\">\n"...)
	err := s.forEachDrawable(func(el *element) error {
		switch el.kind {
		case svg3d.ElementPoint:
			p := el.geom.Points[0]
			b = append(b, `<circle r="`...)
			b = appendFloat(b, el.style.Radius)
			b = append(b, `" cx="`...)
			b = appendFloat(b, p.X)
			b = append(b, `" cy="`...)
			b = appendFloat(b, p.Y)
		case svg3d.ElementPath:
			b = append(b, `<path d="`...)
			b = el.geom.AppendPathData(b)
		default:
			return nil
		}
		b = append(b, `" fill="`...)
		b = appendColor(b, el.style.Fill)
		b = append(b, `" stroke="`...)
		b = appendColor(b, el.style.Stroke)
		b = append(b, "\"/>\n"...)
		return nil
	})
	if err != nil {
		return 0, err
	}
	b = append(b, "</svg>\n"...)
	s.buf = b
	n, err := w.Write(b)
	return int64(n), err
}

func appendFloat(b []byte, f float64) []byte {
	return strconv.AppendFloat(b, f, 'g', -1, 64)
}

// appendColor appends c as a CSS color. Nil colors are written as "none".
func appendColor(b []byte, c color.Color) []byte {
	if c == nil {
		return append(b, "none"...)
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	b = append(b, "rgba("...)
	b = strconv.AppendUint(b, uint64(nc.R), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(nc.G), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(nc.B), 10)
	b = append(b, ", "...)
	b = strconv.AppendFloat(b, float64(nc.A)/255, 'g', 2, 64)
	b = append(b, ')')
	return b
}
