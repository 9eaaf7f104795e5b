package server

import (
	"context"
	"sync/atomic"

	"github.com/shouni/emotive-flow/pkg/domain"
)

// mockGenerator は generator.ImageGenerator のテスト用モックなのだ。
type mockGenerator struct {
	calls        atomic.Int32
	generateFunc func(ctx context.Context, feeling string) domain.GenerationResult
}

func (m *mockGenerator) Generate(ctx context.Context, feeling string) domain.GenerationResult {
	m.calls.Add(1)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, feeling)
	}
	return domain.Succeeded(domain.Image{Data: []byte("fake-png"), MimeType: domain.MimeTypePNG})
}
