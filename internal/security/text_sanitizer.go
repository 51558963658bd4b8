// Package security はアプリケーションのセキュリティ機能を提供する。
//
// TextSanitizer は利用者が入力した自由記述テキストからHTMLを取り除き、
// プレーンテキストとして保存できる形にする。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// TextSanitizer はプレーンテキスト化のインターフェースを定義する。
type TextSanitizer interface {
	// Sanitize は全てのHTMLタグを除去したテキストを返す。
	// 文字参照は元の文字に戻し、前後の空白を取り除く。
	// 出力を再度Sanitizeしても変化しない。
	Sanitize(raw string) string
}

// textSanitizer はTextSanitizerの実装。
// bluemondayのポリシーはスレッドセーフに共有できる。
type textSanitizer struct {
	policy *bluemonday.Policy
}

// NewTextSanitizer はbluemondayのStrictPolicyを使うTextSanitizerを生成する。
func NewTextSanitizer() TextSanitizer {
	return &textSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は全てのHTMLタグを除去したテキストを返す。
// 文字参照で書かれたタグは戻した後に再度除去し、出力が変わらなくなるまで繰り返す。
// 変化がある限り文字列は短くなるため、繰り返しは入力長で打ち切れる。
func (s *textSanitizer) Sanitize(raw string) string {
	text := raw
	for i := 0; i <= len(raw); i++ {
		next := s.strip(text)
		if next == text {
			break
		}
		text = next
	}
	return text
}

func (s *textSanitizer) strip(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
