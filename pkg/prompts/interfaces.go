package prompts

import "github.com/shouni/go-slide-kit/pkg/search"

// PromptBuilder は、AIプロンプトを構築する契約です。
type PromptBuilder interface {
	// BuildOutline はデッキ全体の構成案を求めるプロンプトを生成します。
	BuildOutline(topic string, slideCount int, results []search.Result) (string, error)
	// BuildSlideContent は1枚分の詳細コンテンツを求めるプロンプトを生成します。
	BuildSlideContent(title string, keyPoints []string, results []search.Result) (string, error)
}

var _ PromptBuilder = (*TextPromptBuilder)(nil)
