package utils

import (
	"strings"
	"unicode"

	"github.com/shouni/emotive-flow/pkg/imgutil"
)

// DownloadPrefix は保存ファイル名の先頭に付く固定文字列です。
const DownloadPrefix = "emotive-flow-"

// Slugify は、空白の連続を "-" 1 つに置き換え、小文字化した文字列を返します。
// 空白以外の文字はそのまま残します。
func Slugify(s string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// DownloadFilename は、気分テキストと MIME タイプから保存用のファイル名を組み立てます。
func DownloadFilename(feeling, mimeType string) string {
	return DownloadPrefix + Slugify(feeling) + imgutil.Extension(mimeType)
}
