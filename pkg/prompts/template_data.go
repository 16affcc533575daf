package prompts

import (
	_ "embed"

	"github.com/shouni/go-slide-kit/pkg/search"
)

const (
	ModeOutline      = "outline"
	ModeSlideContent = "slide_content"
)

// 各プロンプトに埋め込む検索結果の上限です。
const (
	OutlineContextLimit = 5
	SlideContextLimit   = 3
)

// TemplateData はプロンプトのテンプレートに渡すデータ構造です。
type TemplateData struct {
	// Topic と SlideCount は outline 用です。
	Topic      string
	SlideCount int

	// SlideTitle と KeyPoints は slide_content 用です。
	SlideTitle string
	KeyPoints  []string

	Results []search.Result
}

var (
	//go:embed outline.md
	OutlinePrompt string
	//go:embed slide_content.md
	SlideContentPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップです。
var allTemplates = map[string]string{
	ModeOutline:      OutlinePrompt,
	ModeSlideContent: SlideContentPrompt,
}
