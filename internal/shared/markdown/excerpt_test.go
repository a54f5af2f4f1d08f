package markdown

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	src := "# Title\n\nSome **bold** and _italic_ text with a [link](https://example.com).\n\n```go\nfmt.Println(\"hidden\")\n```\n\n![alt](/img.png)\n\n- item one\n- item two\n"

	got := PlainText(src)

	assert.Equal(t, "Title Some bold and italic text with a link. item one item two", got)
	assert.NotContains(t, got, "hidden")
	assert.NotContains(t, got, "alt")
}

func TestExcerpt_Short(t *testing.T) {
	assert.Equal(t, "Hello world", Excerpt("Hello *world*", 300))
}

func TestExcerpt_Truncates(t *testing.T) {
	src := "Go makes it easy to build simple, reliable, and efficient software at any scale."

	got := Excerpt(src, 30)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), 30)
	assert.Equal(t, "Go makes it easy to build…", got)
}

func TestExcerpt_MultiByte(t *testing.T) {
	src := "안녕하세요 오늘은 고 언어의 동시성 모델에 대해서 이야기해 보겠습니다"

	got := Excerpt(src, 12)

	assert.LessOrEqual(t, utf8.RuneCountInString(got), 12)
	assert.True(t, utf8.ValidString(got))
}
