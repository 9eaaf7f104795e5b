// Package mood は気分テキストをローディングアニメーションのスタイルに対応付けます。
package mood

import (
	"strings"
	"time"

	"github.com/shouni/emotive-flow/pkg/domain"
)

// Rule は (判定関数, スタイル) の組です。Rules の並び順がそのまま優先順位になります。
type Rule struct {
	Name     string
	Keywords []string
	Match    func(lower string) bool
	Style    domain.Style
}

var (
	Sad = domain.Style{
		Name: "sad", Primary: "#1e293b", Secondary: "#1e3a8a", Accent: "#1e1b4b",
		Period: 18 * time.Second, Opacity: 0.4, BlurRadius: 80,
	}
	Angry = domain.Style{
		Name: "angry", Primary: "#dc2626", Secondary: "#c2410c", Accent: "#881337",
		Period: 2 * time.Second, Opacity: 0.8, BlurRadius: 40,
	}
	Happy = domain.Style{
		Name: "happy", Primary: "#eab308", Secondary: "#ec4899", Accent: "#f97316",
		Period: 4 * time.Second, Opacity: 0.7, BlurRadius: 50,
	}
	Calm = domain.Style{
		Name: "calm", Primary: "#0d9488", Secondary: "#047857", Accent: "#155e75",
		Period: 12 * time.Second, Opacity: 0.5, BlurRadius: 70,
	}
	// Default はどのクラスタにも一致しなかった場合の energetic/balanced スタイルです。
	Default = domain.Style{
		Name: "energetic", Primary: "#f43f5e", Secondary: "#a855f7", Accent: "#6366f1",
		Period: 7 * time.Second, Opacity: 0.6, BlurRadius: 60,
	}
)

// Rules は評価順に並んだ分類ルールです。最初に一致したものが採用されます。
var Rules = []Rule{
	newRule(Sad, "sad", "lonely", "blue", "depressed", "tired", "grief", "cry", "down", "bad", "empty", "nothing", "numb"),
	newRule(Angry, "angry", "mad", "furious", "hate", "rage", "annoyed", "frustrated", "burn", "scream", "stress"),
	newRule(Happy, "happy", "joy", "excited", "love", "great", "good", "awesome", "yay", "glad", "hyper", "party"),
	newRule(Calm, "calm", "peace", "relax", "chill", "zen", "quiet", "fine", "ok", "sleepy", "bored"),
}

// newRule はキーワードのいずれかを部分文字列として含むかを判定するルールを作ります。
func newRule(style domain.Style, keywords ...string) Rule {
	return Rule{
		Name:     style.Name,
		Keywords: keywords,
		Match: func(lower string) bool {
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					return true
				}
			}
			return false
		},
		Style: style,
	}
}

// Classify はテキストを小文字化し、Rules を先頭から評価して最初に一致したスタイルを返します。
// 一致しない場合（空文字列を含む）は Default を返します。
func Classify(text string) domain.Style {
	lower := strings.ToLower(text)
	for _, r := range Rules {
		if r.Match(lower) {
			return r.Style
		}
	}
	return Default
}

// Keywords は指定したクラスタのキーワード一覧を返します。未知の名前なら nil です。
func Keywords(name string) []string {
	for _, r := range Rules {
		if r.Name == name {
			out := make([]string, len(r.Keywords))
			copy(out, r.Keywords)
			return out
		}
	}
	return nil
}
