package generator

import (
	"errors"
	"strings"

	"github.com/shouni/emotive-flow/pkg/domain"
	"google.golang.org/genai"
)

var errNoImageData = errors.New(domain.MsgNoImageData)

// parseToResponse は最初の候補から最初のインライン画像パートを取り出します。
// Data が空のインラインパートは画像とみなさず、次のパートを探します。
// 画像が無い場合は errNoImageData と、診断用の FinishReason を返します。
func parseToResponse(resp *genai.GenerateContentResponse) (*ImageOutput, genai.FinishReason, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, genai.FinishReasonUnspecified, errNoImageData
	}

	// Geminiからの最初の候補 (Candidate) のみを利用する。
	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mimeType := strings.TrimSpace(part.InlineData.MIMEType)
			if mimeType == "" {
				mimeType = domain.MimeTypePNG
			}
			return &ImageOutput{Data: part.InlineData.Data, MimeType: mimeType}, candidate.FinishReason, nil
		}
	}

	return nil, candidate.FinishReason, errNoImageData
}

// errorMessage は API 呼び出しの失敗から利用者に見せるメッセージを取り出します。
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
