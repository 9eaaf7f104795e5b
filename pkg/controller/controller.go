// Package controller は入力・生成中・結果表示の画面遷移を 1 つの状態機械として管理します。
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shouni/emotive-flow/pkg/domain"
	"github.com/shouni/emotive-flow/pkg/generator"
	"github.com/shouni/emotive-flow/pkg/mood"
)

// DefaultMinDuration はローディング表示を最低限見せる時間です。
const DefaultMinDuration = 3 * time.Second

var (
	// ErrBusy は生成中に再度送信された場合のエラーです。新しいリクエストは送られません。
	ErrBusy = errors.New("a wallpaper is already being generated")
	// ErrEmptyFeeling は空白のみの入力に対するエラーです。
	ErrEmptyFeeling = errors.New("feeling must not be empty")
	// ErrFeelingTooLong は最大文字数を超えた入力に対するエラーです。
	ErrFeelingTooLong = errors.New("feeling must be at most 200 characters")
)

// Option は Controller の設定を変更します。
type Option func(*Controller)

// WithMinDuration はローディング表示の最低時間を設定します。
func WithMinDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.minDuration = d
		}
	}
}

// Controller は 1 つの画面（ブラウザセッション）の状態を保持します。
// 同時に実行中の生成リクエストは最大 1 件です。
type Controller struct {
	gen         generator.ImageGenerator
	minDuration time.Duration

	mu      sync.Mutex
	state   State
	feeling string
	style   domain.Style
	image   *domain.Image
	errMsg  string
	genID   uint64
	changed chan struct{}
}

// New は Controller を Idle 状態で作成します。
func New(gen generator.ImageGenerator, opts ...Option) *Controller {
	c := &Controller{
		gen:         gen,
		minDuration: DefaultMinDuration,
		style:       mood.Default,
		changed:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MinDuration は設定されているローディング表示の最低時間を返します。
func (c *Controller) MinDuration() time.Duration {
	return c.minDuration
}

// Submit は生成を開始して Loading に遷移します。返されたチャネルは結果の反映後に閉じられます。
// 生成中の呼び出しは ErrBusy を返し、何もしません。
func (c *Controller) Submit(ctx context.Context, text string) (<-chan struct{}, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyFeeling
	}
	if utf8.RuneCountInString(text) > domain.MaxFeelingLength {
		return nil, ErrFeelingTooLong
	}

	c.mu.Lock()
	if c.state == StateLoading {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.genID++
	id := c.genID
	c.state = StateLoading
	c.feeling = text
	c.style = mood.Classify(text)
	c.image = nil
	c.errMsg = ""
	style := c.style
	c.notifyLocked()
	c.mu.Unlock()

	slog.InfoContext(ctx, "壁紙の生成を開始します", "generation", id, "style", style.Name)

	// 画面を離れても生成は取り消さない
	runCtx := context.WithoutCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		res := Floor(runCtx, c.minDuration, func(ctx context.Context) domain.GenerationResult {
			return c.gen.Generate(ctx, text)
		})
		c.complete(id, res)
	}()
	return done, nil
}

// complete は生成結果を反映します。Loading 以外、または別の世代の結果は無視します。
func (c *Controller) complete(id uint64, res domain.GenerationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateLoading || c.genID != id {
		return
	}
	defer c.notifyLocked()
	if res.OK() {
		c.state = StateResult
		c.image = res.Image
		return
	}

	c.state = StateIdle
	c.errMsg = domain.MsgGenerationFailed
	if res.Err != nil && res.Err.Message != "" {
		c.errMsg = res.Err.Message
	}
}

// Reset は画像・気分・エラーを消去して Idle に戻します。生成中は何もせず false を返します。
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateLoading {
		return false
	}
	c.state = StateIdle
	c.image = nil
	c.feeling = ""
	c.style = mood.Default
	c.errMsg = ""
	c.notifyLocked()
	return true
}

// Dismiss はエラー表示だけを消します。
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.errMsg != "" {
		c.errMsg = ""
		c.notifyLocked()
	}
}

// Changed は次に状態が変わったときに閉じられるチャネルを返します。
// 変化を待ち続ける場合は、受信のたびに Changed を呼び直してください。
func (c *Controller) Changed() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changed
}

// notifyLocked は待機中の購読者を起こします。c.mu を保持した状態で呼び出します。
func (c *Controller) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:      c.state,
		Feeling:    c.feeling,
		Style:      c.style,
		Image:      c.image,
		Error:      c.errMsg,
		Generation: c.genID,
	}
}
