package parser

import (
	"strings"
	"unicode/utf8"
)

const excerptLen = 200

// ExtractObject は前後に説明文が付いた生成結果から、最初に現れる釣り合いの取れた {...} を切り出します。
// 開き括弧が無い場合は入力をそのまま返し、エラー判定はデコード側に任せます。
// 括弧が最後まで閉じない場合は空文字列を返します。
func ExtractObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return raw
	}

	depth := 0
	end := start
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i + 1
				return raw[start:end]
			}
		}
	}
	return raw[start:end]
}

// truncateString は s を先頭 maxLen 文字（rune 単位）に切り詰めます。
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
