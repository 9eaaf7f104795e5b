package domain

// MimeTypePNG は API がメディアタイプを返さなかった場合の既定値です。
const MimeTypePNG = "image/png"

// 利用者に表示されるエラーメッセージ
const (
	MsgNoImageData      = "No image data found in the response."
	MsgGenerationFailed = "Failed to generate image."
)

// ErrorKind は生成失敗の分類です。
type ErrorKind int

const (
	// KindUpstreamEmpty は応答に利用可能な画像パートが無かったことを表します。
	KindUpstreamEmpty ErrorKind = iota + 1
	// KindUpstreamFailure は API 呼び出し自体が失敗したことを表します（通信・認証・クォータ等）。
	KindUpstreamFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindUpstreamEmpty:
		return "upstream_empty"
	case KindUpstreamFailure:
		return "upstream_failure"
	default:
		return "unknown"
	}
}

// Image は生成された画像データとそのメディアタイプです。
type Image struct {
	Data     []byte
	MimeType string
}

// GenerationError は生成クライアントの境界で統一されたエラー値です。
type GenerationError struct {
	Kind    ErrorKind
	Message string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// GenerationResult は 1 回の生成試行の結果です。Image と Err のどちらか一方のみが設定されます。
type GenerationResult struct {
	Image *Image
	Err   *GenerationError
}

// OK は画像が得られた場合に true を返します。
func (r GenerationResult) OK() bool {
	return r.Err == nil && r.Image != nil
}

// Succeeded は成功結果を組み立てます。
func Succeeded(img Image) GenerationResult {
	return GenerationResult{Image: &img}
}

// Failed は失敗結果を組み立てます。メッセージが空の場合は汎用メッセージに置き換えます。
func Failed(kind ErrorKind, msg string) GenerationResult {
	if msg == "" {
		msg = MsgGenerationFailed
	}
	return GenerationResult{Err: &GenerationError{Kind: kind, Message: msg}}
}
