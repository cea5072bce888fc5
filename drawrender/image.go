package drawrender

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/chewxy/math32"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/md2"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/svg3d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var _ svg3d.Drawable = (*Image)(nil)

const (
	circleSegments = 24
	strokeWidth    = 1
	captionSize    = 12
	// Coordinates are clamped to this many surface sizes away from the surface
	// to bound rasterization work for far off-screen vertices.
	clampSizes = 4
)

// Image is a drawing surface rasterized onto an image. Elements are alpha
// composited over Background in append order.
type Image struct {
	store
	width, height int
	// Background color the image is cleared to before drawing. Nil leaves the destination untouched.
	Background color.Color
	// CaptionColor is the color of caption text. Defaults to black.
	CaptionColor color.Color

	caption string
	face    font.Face
	rast    vector.Rasterizer
}

// NewImage returns an empty image drawing surface of the given size in pixels with a white background.
func NewImage(width, height int) *Image {
	return &Image{width: width, height: height, Background: color.White}
}

// Size returns the surface size in pixels.
func (img *Image) Size() (width, height float64) {
	return float64(img.width), float64(img.height)
}

// SetCaption sets text drawn on the top left corner of the image over all elements.
// An empty caption draws no text.
func (img *Image) SetCaption(text string) error {
	if text != "" && img.face == nil {
		ttf, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return err
		}
		img.face = truetype.NewFace(ttf, &truetype.Options{
			Size:    captionSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	img.caption = text
	return nil
}

// RGBA draws the surface onto a new RGBA image of the surface size.
// It fails for a zero size surface.
func (img *Image) RGBA() (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	err := img.Draw(dst)
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// Draw draws the surface onto dst. Surface coordinate (0,0) maps to dst.Bounds().Min.
func (img *Image) Draw(dst draw.Image) error {
	bb := dst.Bounds()
	if bb.Empty() {
		return errors.New("empty destination image")
	}
	if img.Background != nil {
		draw.Draw(dst, bb, image.NewUniform(img.Background), image.Point{}, draw.Src)
	}
	err := img.forEachDrawable(func(el *element) error {
		switch el.kind {
		case svg3d.ElementPoint:
			c := img.toPixel(el.geom.Points[0])
			r := float32(el.style.Radius)
			if el.style.Fill != nil {
				img.rast.Reset(bb.Dx(), bb.Dy())
				img.circle(c, r)
				img.fill(dst, el.style.Fill)
			}
			if el.style.Stroke != nil {
				img.rast.Reset(bb.Dx(), bb.Dy())
				img.strokeCircle(c, r)
				img.fill(dst, el.style.Stroke)
			}
		case svg3d.ElementPath:
			pts := make([]ms2.Vec, len(el.geom.Points))
			for i, p := range el.geom.Points {
				pts[i] = img.toPixel(p)
			}
			if el.style.Fill != nil && len(pts) > 2 {
				img.rast.Reset(bb.Dx(), bb.Dy())
				img.polygon(pts)
				img.fill(dst, el.style.Fill)
			}
			if el.style.Stroke != nil && len(pts) > 1 {
				img.rast.Reset(bb.Dx(), bb.Dy())
				img.polyline(pts, el.geom.Closed)
				img.fill(dst, el.style.Stroke)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if img.caption != "" && img.face != nil {
		src := img.CaptionColor
		if src == nil {
			src = color.Black
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(src),
			Face: img.face,
			Dot:  fixed.P(bb.Min.X+4, bb.Min.Y+4+img.face.Metrics().Ascent.Ceil()),
		}
		d.DrawString(img.caption)
	}
	return nil
}

func (img *Image) toPixel(p md2.Vec) ms2.Vec {
	w, h := float32(img.width), float32(img.height)
	return ms2.Vec{
		X: ms1.Clamp(float32(p.X), -clampSizes*w, (clampSizes+1)*w),
		Y: ms1.Clamp(float32(p.Y), -clampSizes*h, (clampSizes+1)*h),
	}
}

func (img *Image) fill(dst draw.Image, c color.Color) {
	img.rast.DrawOp = draw.Over
	img.rast.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (img *Image) polygon(pts []ms2.Vec) {
	img.rast.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		img.rast.LineTo(p.X, p.Y)
	}
	img.rast.ClosePath()
}

func (img *Image) circle(c ms2.Vec, r float32) {
	const dtheta = 2 * math32.Pi / circleSegments
	img.rast.MoveTo(c.X+r, c.Y)
	for i := 1; i < circleSegments; i++ {
		s, co := math32.Sincos(float32(i) * dtheta)
		img.rast.LineTo(c.X+r*co, c.Y+r*s)
	}
	img.rast.ClosePath()
}

func (img *Image) strokeCircle(c ms2.Vec, r float32) {
	const dtheta = 2 * math32.Pi / circleSegments
	pts := make([]ms2.Vec, circleSegments)
	for i := range pts {
		s, co := math32.Sincos(float32(i) * dtheta)
		pts[i] = ms2.Vec{X: c.X + r*co, Y: c.Y + r*s}
	}
	img.polyline(pts, true)
}

// polyline adds a quad of strokeWidth around every segment of pts.
func (img *Image) polyline(pts []ms2.Vec, closed bool) {
	n := len(pts)
	if !closed {
		n--
	}
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := ms2.Sub(b, a)
		l := ms2.Norm(d)
		if l == 0 {
			continue
		}
		// Half width normal.
		nrm := ms2.Scale(strokeWidth/(2*l), ms2.Vec{X: -d.Y, Y: d.X})
		p0 := ms2.Add(a, nrm)
		p1 := ms2.Add(b, nrm)
		p2 := ms2.Sub(b, nrm)
		p3 := ms2.Sub(a, nrm)
		img.rast.MoveTo(p0.X, p0.Y)
		img.rast.LineTo(p1.X, p1.Y)
		img.rast.LineTo(p2.X, p2.Y)
		img.rast.LineTo(p3.X, p3.Y)
		img.rast.ClosePath()
	}
}
