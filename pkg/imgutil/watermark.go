package imgutil

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/shouni/emotive-flow/pkg/domain"
)

const (
	// DefaultLabel は生成画像に刻むブランド名です。
	DefaultLabel = "EMOTIVE"
	// DefaultSizeRatio は画像幅に対するフォントサイズの比率です。
	DefaultSizeRatio = 0.08
)

// DefaultLayers は「溶岩の質感に埋め込まれた」見た目と可読性を両立させる 2 段の描画です。
var DefaultLayers = []Layer{
	{
		Name: "embed",
		Mode: BlendOverlay,
		Fill: color.NRGBA{R: 255, G: 255, B: 255, A: 102},
	},
	{
		Name: "lift",
		Mode: BlendNormal,
		Fill: color.NRGBA{R: 255, G: 255, B: 255, A: 26},
		Shadow: &Shadow{
			Color:   color.NRGBA{A: 51},
			Blur:    10,
			OffsetY: 2,
		},
	},
}

var loadBoldFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// Watermarker は生成画像にテキストの透かしを合成します。
type Watermarker struct {
	Label     string
	SizeRatio float64
	Layers    []Layer
}

// NewWatermarker は既定の設定 (EMOTIVE, 幅の 8%, 2 レイヤー) で Watermarker を作成します。
func NewWatermarker() *Watermarker {
	return &Watermarker{
		Label:     DefaultLabel,
		SizeRatio: DefaultSizeRatio,
		Layers:    DefaultLayers,
	}
}

// Watermark は既定の Watermarker で data に透かしを入れ、データとメディアタイプを返します。
func Watermark(data []byte, mimeType string) ([]byte, string) {
	out := NewWatermarker().Apply(domain.Image{Data: data, MimeType: mimeType})
	return out.Data, out.MimeType
}

// Apply は透かしを入れた画像を返します。
// 内部でどのような失敗が起きても警告を記録して元の画像をそのまま返します。
func (w *Watermarker) Apply(img domain.Image) (out domain.Image) {
	out = img
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("透かしの描画中にパニックが発生しました。元の画像を返します", "panic", r)
			out = img
		}
	}()

	marked, err := w.render(img)
	if err != nil {
		slog.Warn("透かしの合成に失敗しました。元の画像を返します", "mime_type", img.MimeType, "error", err)
		return img
	}
	return marked
}

func (w *Watermarker) render(img domain.Image) (domain.Image, error) {
	src, _, err := Decode(img.Data)
	if err != nil {
		return domain.Image{}, err
	}
	canvas := NewCanvas(src)
	b := canvas.Bounds()

	fontSize := math.Floor(float64(b.Dx()) * w.SizeRatio)
	if fontSize < 1 {
		return domain.Image{}, fmt.Errorf("画像が小さすぎて透かしを描画できません: %dx%d", b.Dx(), b.Dy())
	}

	f, err := loadBoldFont()
	if err != nil {
		return domain.Image{}, fmt.Errorf("フォントの読み込みに失敗しました: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("フォントフェイスの作成に失敗しました: %w", err)
	}
	defer face.Close()

	mask := w.textMask(face, b, fontSize)
	for _, l := range w.Layers {
		canvas.Apply(mask, l)
	}

	data, mt, err := Encode(canvas.Image(), img.MimeType)
	if err != nil {
		return domain.Image{}, err
	}
	return domain.Image{Data: data, MimeType: mt}, nil
}

// textMask はラベルを横中央、下端から fontSize*2 の高さを中心線として描いた被覆マスクを返します。
// マスクの範囲はシャドウのにじみが収まるだけの余白を含みます。
func (w *Watermarker) textMask(face font.Face, b image.Rectangle, fontSize float64) *image.Alpha {
	advance := font.MeasureString(face, w.Label)
	m := face.Metrics()

	centerY := fixed.I(b.Max.Y) - fixed.Int26_6(fontSize*2*64)
	dot := fixed.Point26_6{
		X: fixed.I(b.Min.X+b.Dx()/2) - advance/2,
		Y: centerY + (m.Ascent-m.Descent)/2,
	}

	glyphs, _ := font.BoundString(face, w.Label)
	pad := int(fontSize/2) + 32
	r := image.Rect(
		(glyphs.Min.X+dot.X).Floor()-pad,
		(glyphs.Min.Y+dot.Y).Floor()-pad,
		(glyphs.Max.X+dot.X).Ceil()+pad,
		(glyphs.Max.Y+dot.Y).Ceil()+pad,
	).Intersect(b)

	mask := image.NewAlpha(r)
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  dot,
	}
	d.DrawString(w.Label)
	return mask
}
