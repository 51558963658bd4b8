package security

import (
	"strings"
	"testing"
)

func TestTextSanitizer_Sanitize(t *testing.T) {
	sanitizer := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "空文字列はそのまま", input: "", want: ""},
		{name: "プレーンテキストはそのまま", input: "コーヒーが好きです", want: "コーヒーが好きです"},
		{name: "タグを除去する", input: "<p>こんにちは<strong>世界</strong></p>", want: "こんにちは世界"},
		{name: "scriptの中身ごと除去する", input: "hi<script>alert(1)</script>", want: "hi"},
		{name: "イベント属性付き要素を除去する", input: `<img src="x" onerror="alert(1)">ok`, want: "ok"},
		{name: "アンパサンドは元の文字のまま", input: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "前後の空白を取り除く", input: "  <b>bio</b>  ", want: "bio"},
		{name: "文字参照で書かれたタグも除去する", input: "&lt;script&gt;alert(1)&lt;/script&gt; hi", want: "hi"},
		{name: "二重の文字参照も除去する", input: "&amp;lt;b&amp;gt;bold", want: "bold"},
		{name: "不等号だけの文はそのまま", input: "1 < 2 > 0", want: "1 < 2 > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextSanitizer_NoTagsRemain(t *testing.T) {
	sanitizer := NewTextSanitizer()
	got := sanitizer.Sanitize(`<div><a href="javascript:alert(1)">link</a><iframe src="https://example.com"></iframe></div>`)
	if strings.Contains(got, "<") {
		t.Errorf("tags remain: %q", got)
	}
	if got != "link" {
		t.Errorf("Sanitize = %q, want link", got)
	}
}

func TestTextSanitizer_Idempotent(t *testing.T) {
	sanitizer := NewTextSanitizer()
	inputs := []string{
		"<em>朝型</em>です。Go & Python",
		"&lt;script&gt;alert(1)&lt;/script&gt; hi",
		"&lt;b&gt;太字&lt;/b&gt; &amp;amp; 記号",
		"&amp;lt;i&amp;gt;nested",
	}
	for _, input := range inputs {
		first := sanitizer.Sanitize(input)
		second := sanitizer.Sanitize(first)
		if first != second {
			t.Errorf("Sanitize(%q): re-saving changes biography: %q then %q", input, first, second)
		}
		if strings.Contains(first, "<") {
			t.Errorf("Sanitize(%q) left markup: %q", input, first)
		}
	}
}
