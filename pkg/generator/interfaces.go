package generator

import (
	"context"

	"github.com/shouni/emotive-flow/pkg/domain"
	"google.golang.org/genai"
)

// ContentGenerator は Gemini の generateContent 呼び出しを抽象化するインターフェースです。
// *genai.Models がこれを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Watermarker は取得した画像に透かしを合成します。失敗しても元の画像を返す実装を前提とします。
type Watermarker interface {
	Apply(img domain.Image) domain.Image
}

// ImageGenerator はコントローラーが利用する生成窓口です。
// 失敗はすべて GenerationResult のエラー側に変換され、呼び出し元へ error として伝播しません。
type ImageGenerator interface {
	Generate(ctx context.Context, feeling string) domain.GenerationResult
}
