package controller

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/shouni/emotive-flow/pkg/domain"
)

// mockGenerator は generator.ImageGenerator のテスト用モックなのだ。
type mockGenerator struct {
	calls        atomic.Int32
	mu           sync.Mutex
	lastFeeling  string
	generateFunc func(ctx context.Context, feeling string) domain.GenerationResult
}

func (m *mockGenerator) Generate(ctx context.Context, feeling string) domain.GenerationResult {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastFeeling = feeling
	m.mu.Unlock()
	if m.generateFunc != nil {
		return m.generateFunc(ctx, feeling)
	}
	return domain.Succeeded(domain.Image{Data: []byte("png"), MimeType: domain.MimeTypePNG})
}

// blockingGenerator は release が閉じられるまで結果を返さないのだ。
func blockingGenerator(release <-chan struct{}, res domain.GenerationResult) *mockGenerator {
	return &mockGenerator{
		generateFunc: func(ctx context.Context, feeling string) domain.GenerationResult {
			<-release
			return res
		},
	}
}
