package domain

import "time"

// MaxFeelingLength は入力できる気分テキストの最大文字数（rune 単位）です。
const MaxFeelingLength = 200

// Style はローディングアニメーションの見た目を決める不変の設定です。
// 色は 16 進表記 (#rrggbb) で保持します。
type Style struct {
	Name       string
	Primary    string
	Secondary  string
	Accent     string
	Period     time.Duration
	Opacity    float64
	BlurRadius int // px
}

// Colors は Primary, Secondary, Accent の順に色を返します。
func (s Style) Colors() []string {
	return []string{s.Primary, s.Secondary, s.Accent}
}
