package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"mime"
	"strings"

	"github.com/shouni/emotive-flow/pkg/domain"

	_ "golang.org/x/image/webp"
)

// JPEGQuality は JPEG で再エンコードする際の品質です。
const JPEGQuality = 92

// Decode は画像データ（PNG, JPEG, GIF, WebP）をデコードします。
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}
	return img, format, nil
}

// NormalizeMimeType はパラメータを除去し小文字化したメディアタイプを返します。空なら PNG とみなします。
func NormalizeMimeType(mimeType string) string {
	if strings.TrimSpace(mimeType) == "" {
		return domain.MimeTypePNG
	}
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		return mt
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

// Encode は画像を指定されたメディアタイプでエンコードし、実際に使ったメディアタイプと共に返します。
// WebP は純粋な Go のエンコーダが無いため PNG として出力します。
func Encode(img image.Image, mimeType string) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	mt := NormalizeMimeType(mimeType)

	var err error
	switch mt {
	case "image/png":
		err = png.Encode(buf, img)
	case "image/jpeg", "image/jpg":
		mt = "image/jpeg"
		err = jpeg.Encode(buf, img, &jpeg.Options{Quality: JPEGQuality})
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	case "image/webp":
		mt = domain.MimeTypePNG
		err = png.Encode(buf, img)
	default:
		return nil, "", fmt.Errorf("未対応のメディアタイプです: %s", mimeType)
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s へのエンコードに失敗しました: %w", mt, err)
	}
	return buf.Bytes(), mt, nil
}

// Extension はメディアタイプに対応するファイル拡張子（ドット付き）を返します。
func Extension(mimeType string) string {
	switch NormalizeMimeType(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
