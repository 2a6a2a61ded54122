package pacing

import (
	"context"
	"time"
)

// マーケットプレイスの暗黙のレート制限を守るための固定ディレイ。
// リトライ用のバックオフではなく、成否に関わらず毎回同じだけ待つ。
type Pacer interface {
	Wait(ctx context.Context) error
}

type fixedDelay struct {
	d time.Duration
}

// 1コールごとにdだけ待つPacerを返す。
func NewFixedDelay(d time.Duration) Pacer {
	return fixedDelay{d: d}
}

func (p fixedDelay) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type noop struct{}

// テストおよびディレイ不要な呼び出し向け。
func NewNoop() Pacer {
	return noop{}
}

func (noop) Wait(ctx context.Context) error {
	return ctx.Err()
}
