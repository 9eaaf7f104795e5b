package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/emotive-flow/pkg/domain"
	"google.golang.org/genai"
)

// GeminiGenerator は気分テキストから壁紙画像を 1 回の API 呼び出しで生成します。リトライは行いません。
type GeminiGenerator struct {
	aiClient    ContentGenerator
	watermarker Watermarker
	model       string
}

// NewGeminiGenerator は GeminiGenerator を初期化します。
// watermarker が nil の場合は透かしを入れずに画像を返します。
func NewGeminiGenerator(aiClient ContentGenerator, watermarker Watermarker, model string) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ContentGenerator) is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{
		aiClient:    aiClient,
		watermarker: watermarker,
		model:       model,
	}, nil
}

// Model は使用するモデル名を返します。
func (g *GeminiGenerator) Model() string {
	return g.model
}

// Generate はプロンプトを組み立てて Gemini に送り、最初のインライン画像を返します。
// すべての失敗は GenerationResult のエラーとして返します。
func (g *GeminiGenerator) Generate(ctx context.Context, feeling string) domain.GenerationResult {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(feeling), genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: WallpaperAspectRatio,
		},
	}

	start := time.Now()
	slog.InfoContext(ctx, "Geminiに壁紙の生成をリクエストします", "model", g.model, "feeling_len", len([]rune(feeling)))

	resp, err := g.aiClient.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		slog.WarnContext(ctx, "Gemini APIの呼び出しに失敗しました", "model", g.model, "error", err)
		return domain.Failed(domain.KindUpstreamFailure, errorMessage(err))
	}

	out, reason, err := parseToResponse(resp)
	if err != nil {
		if reason != "" && reason != genai.FinishReasonUnspecified && reason != genai.FinishReasonStop {
			slog.WarnContext(ctx, "画像生成が異常終了しました", "finish_reason", reason)
		} else {
			slog.WarnContext(ctx, "レスポンスに画像データが含まれていませんでした")
		}
		return domain.Failed(domain.KindUpstreamEmpty, domain.MsgNoImageData)
	}

	img := domain.Image{Data: out.Data, MimeType: out.MimeType}
	if g.watermarker != nil {
		img = g.watermarker.Apply(img)
	}

	slog.InfoContext(ctx, "壁紙の生成が完了しました",
		"mime_type", img.MimeType, "bytes", len(img.Data), "elapsed", time.Since(start))
	return domain.Succeeded(img)
}
