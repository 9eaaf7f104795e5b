package imgutil

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendMode は塗りを下地に合成する際の混合方法です。
type BlendMode int

const (
	// BlendNormal は通常の source-over 合成です。
	BlendNormal BlendMode = iota
	// BlendOverlay は下地の明暗に応じて乗算/スクリーンを切り替える合成です。白で塗ると下地が明るくなります。
	BlendOverlay
)

func (m BlendMode) String() string {
	if m == BlendOverlay {
		return "overlay"
	}
	return "normal"
}

// Shadow は塗りの下に描くドロップシャドウです。Blur は canvas の shadowBlur と同じ尺度です。
type Shadow struct {
	Color   color.NRGBA
	Blur    float64
	OffsetX int
	OffsetY int
}

// Layer はマスクに対して行う名前付きの描画操作です。
type Layer struct {
	Name   string
	Mode   BlendMode
	Fill   color.NRGBA
	Shadow *Shadow
}

// Canvas は RGBA 画像に対してレイヤー単位の合成を行う描画面です。
type Canvas struct {
	img *image.RGBA
}

// NewCanvas は src をネイティブサイズでコピーした描画面を作成します。
func NewCanvas(src image.Image) *Canvas {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return &Canvas{img: dst}
}

// Bounds は描画面の範囲を返します。
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Image は合成結果を返します。
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Apply はマスクの被覆率に従って Layer を描画します。シャドウがあれば先に描きます。
func (c *Canvas) Apply(mask *image.Alpha, l Layer) {
	if l.Shadow != nil {
		sm := shiftAlpha(mask, l.Shadow.OffsetX, l.Shadow.OffsetY)
		sm = blurAlpha(sm, l.Shadow.Blur/2)
		c.composite(sm, l.Shadow.Color, BlendNormal)
	}
	c.composite(mask, l.Fill, l.Mode)
}

// composite は W3C Compositing の source-over + 混合関数で 1 画素ずつ合成します。
func (c *Canvas) composite(mask *image.Alpha, fill color.NRGBA, mode BlendMode) {
	r := mask.Bounds().Intersect(c.img.Bounds())
	if r.Empty() || fill.A == 0 {
		return
	}
	cs := colorful.Color{R: float64(fill.R) / 255, G: float64(fill.G) / 255, B: float64(fill.B) / 255}
	fillAlpha := float64(fill.A) / 255

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				continue
			}
			as := fillAlpha * float64(cov) / 255

			d := color.NRGBAModel.Convert(c.img.RGBAAt(x, y)).(color.NRGBA)
			ab := float64(d.A) / 255
			cb := colorful.Color{R: float64(d.R) / 255, G: float64(d.G) / 255, B: float64(d.B) / 255}

			mixed := colorful.Color{
				R: (1-ab)*cs.R + ab*blend(mode, cb.R, cs.R),
				G: (1-ab)*cs.G + ab*blend(mode, cb.G, cs.G),
				B: (1-ab)*cs.B + ab*blend(mode, cb.B, cs.B),
			}
			ao := as + ab*(1-as)
			if ao <= 0 {
				continue
			}
			out := colorful.Color{
				R: (as*mixed.R + ab*(1-as)*cb.R) / ao,
				G: (as*mixed.G + ab*(1-as)*cb.G) / ao,
				B: (as*mixed.B + ab*(1-as)*cb.B) / ao,
			}.Clamped()

			rr, gg, bb := out.RGB255()
			c.img.Set(x, y, color.NRGBA{R: rr, G: gg, B: bb, A: uint8(math.Round(ao * 255))})
		}
	}
}

func blend(mode BlendMode, cb, cs float64) float64 {
	switch mode {
	case BlendOverlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	default:
		return cs
	}
}

// shiftAlpha はピクセルをコピーせずにマスクを平行移動します。
func shiftAlpha(m *image.Alpha, dx, dy int) *image.Alpha {
	return &image.Alpha{
		Pix:    m.Pix,
		Stride: m.Stride,
		Rect:   m.Rect.Add(image.Pt(dx, dy)),
	}
}

// blurAlpha は 3 回のボックスブラーでガウスぼかし (標準偏差 sigma) を近似します。
func blurAlpha(m *image.Alpha, sigma float64) *image.Alpha {
	out := image.NewAlpha(m.Rect)
	draw.Draw(out, m.Rect, m, m.Rect.Min, draw.Src)
	if sigma <= 0 {
		return out
	}
	w := int(math.Round(math.Sqrt(4*sigma*sigma + 1)))
	radius := max((w-1)/2, 1)

	tmp := make([]uint8, len(out.Pix))
	for range 3 {
		boxBlur(out.Pix, tmp, m.Rect.Dx(), m.Rect.Dy(), 1, out.Stride, radius)
		boxBlur(tmp, out.Pix, m.Rect.Dy(), m.Rect.Dx(), out.Stride, 1, radius)
	}
	return out
}

// boxBlur は lines 本の走査線（長さ n）それぞれに半径 radius の移動平均をかけます。
// step は走査線内の隣接画素の間隔、lineStep は走査線同士の間隔です。範囲外は 0 として扱います。
func boxBlur(src, dst []uint8, n, lines, step, lineStep, radius int) {
	width := 2*radius + 1
	for l := 0; l < lines; l++ {
		base := l * lineStep
		sum := 0
		for i := 0; i <= radius && i < n; i++ {
			sum += int(src[base+i*step])
		}
		for i := 0; i < n; i++ {
			dst[base+i*step] = uint8((sum + width/2) / width)
			if j := i + radius + 1; j < n {
				sum += int(src[base+j*step])
			}
			if j := i - radius; j >= 0 {
				sum -= int(src[base+j*step])
			}
		}
	}
}
