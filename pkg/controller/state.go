package controller

import (
	"github.com/shouni/emotive-flow/pkg/domain"
)

// State は画面の主状態です。エラーは状態ではなく重ねて表示するフラグとして扱います。
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResult
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	default:
		return "idle"
	}
}

// Snapshot はある時点のコントローラー状態の読み取り専用コピーです。
type Snapshot struct {
	State      State
	Feeling    string
	Style      domain.Style
	Image      *domain.Image
	Error      string
	Generation uint64
}

// Loading は生成中かどうかを返します。
func (s Snapshot) Loading() bool {
	return s.State == StateLoading
}
