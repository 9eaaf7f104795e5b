package utils

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"単語1つ", "Happy", "happy"},
		{"空白の連続は1つのハイフンになるのだ", "so   Tired \t today", "so-tired-today"},
		{"前後の空白も置き換わるのだ", " calm ", "-calm-"},
		{"記号はそのまま", "Ugh!! Angry", "ugh!!-angry"},
		{"non-ascii", "とても 嬉しい", "とても-嬉しい"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDownloadFilename(t *testing.T) {
	t.Run("PNG の場合は .png なのだ", func(t *testing.T) {
		if got := DownloadFilename("Feeling Blue", "image/png"); got != "emotive-flow-feeling-blue.png" {
			t.Errorf("unexpected filename: %q", got)
		}
	})

	t.Run("JPEG の場合は .jpg なのだ", func(t *testing.T) {
		if got := DownloadFilename("zen", "image/jpeg"); got != "emotive-flow-zen.jpg" {
			t.Errorf("unexpected filename: %q", got)
		}
	})

	t.Run("MIME タイプが空なら .png にフォールバックするのだ", func(t *testing.T) {
		if got := DownloadFilename("zen", ""); got != "emotive-flow-zen.png" {
			t.Errorf("unexpected filename: %q", got)
		}
	})
}
