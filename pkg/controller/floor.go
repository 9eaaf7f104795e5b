package controller

import (
	"context"
	"time"
)

// Floor は op を実行し、開始から minimum が経過するまで結果の返却を遅らせます。
// 待機中に ctx が終了した場合は待たずに結果を返します。op 自体には ctx をそのまま渡します。
func Floor[T any](ctx context.Context, minimum time.Duration, op func(context.Context) T) T {
	start := time.Now()
	res := op(ctx)

	remaining := minimum - time.Since(start)
	if remaining <= 0 {
		return res
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return res
}
