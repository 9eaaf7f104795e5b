package generator

const (
	// DefaultModel は画像出力に対応した Gemini モデルです。
	DefaultModel = "gemini-2.5-flash-image"
	// WallpaperAspectRatio はスマートフォン壁紙の縦長比率です。
	WallpaperAspectRatio = "9:16"
)

// ImageOutput はレスポンス解析の内部結果です。
type ImageOutput struct {
	Data     []byte
	MimeType string
}
