package prompts

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/shouni/go-slide-kit/pkg/search"
)

var funcs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"sub":  func(a, b int) int { return a - b },
	"join": strings.Join,
}

// TextPromptBuilder はモードごとのテンプレートを保持し、プロンプトを組み立てます。
type TextPromptBuilder struct {
	templates map[string]*template.Template
}

// NewTextPromptBuilder は TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	parsedTemplates := make(map[string]*template.Template)
	for mode, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' (go:embed) の読み込みに失敗しました: 内容が空です", mode)
		}

		tmpl, err := template.New(mode).Funcs(funcs).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", mode, err)
		}
		parsedTemplates[mode] = tmpl
	}

	return &TextPromptBuilder{
		templates: parsedTemplates,
	}, nil
}

// Build は、要求されたモードに応じて適切なテンプレートを実行します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		supported := slices.Sorted(maps.Keys(b.templates))
		return "", fmt.Errorf("不明なモードです: '%s' (利用可能: %s)", mode, strings.Join(supported, ", "))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}

	return sb.String(), nil
}

// BuildOutline は上位 OutlineContextLimit 件の検索結果を添えた outline プロンプトを返します。
func (b *TextPromptBuilder) BuildOutline(topic string, slideCount int, results []search.Result) (string, error) {
	return b.Build(ModeOutline, TemplateData{
		Topic:      topic,
		SlideCount: slideCount,
		Results:    head(results, OutlineContextLimit),
	})
}

// BuildSlideContent は上位 SlideContextLimit 件の検索結果を添えた slide_content プロンプトを返します。
func (b *TextPromptBuilder) BuildSlideContent(title string, keyPoints []string, results []search.Result) (string, error) {
	return b.Build(ModeSlideContent, TemplateData{
		SlideTitle: title,
		KeyPoints:  keyPoints,
		Results:    head(results, SlideContextLimit),
	})
}

func head(results []search.Result, n int) []search.Result {
	if len(results) > n {
		return results[:n]
	}
	return results
}
