package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/parser"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	"github.com/shouni/go-slide-kit/pkg/search"
)

// SlideOutlineRunner はトピックと検索結果からデッキの構成案を生成します。
type SlideOutlineRunner struct {
	cfg           config.Config
	promptBuilder prompts.PromptBuilder
	generator     generator.TextGenerator
}

// NewSlideOutlineRunner は依存関係を注入して初期化します。
func NewSlideOutlineRunner(cfg config.Config, pb prompts.PromptBuilder, gen generator.TextGenerator) *SlideOutlineRunner {
	return &SlideOutlineRunner{
		cfg:           cfg,
		promptBuilder: pb,
		generator:     gen,
	}
}

// Run は outline プロンプトを送信し、応答を検証済みの Outline に変換します。
// 応答の解析や構造の検証に失敗した場合は *domain.ParseError か *domain.StructureError を包んで返します。
func (r *SlideOutlineRunner) Run(ctx context.Context, topic string, results []search.Result) (*domain.Outline, error) {
	prompt, err := r.promptBuilder.BuildOutline(topic, r.cfg.SlideCount, results)
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "OutlineRunner: Calling Gemini API", "model", r.cfg.GeminiModel, "slides", r.cfg.SlideCount)
	raw, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("構成案の生成に失敗しました: %w", err)
	}

	outline, err := parser.DecodeOutline(raw)
	if err != nil {
		return nil, fmt.Errorf("構成案の解析に失敗しました: %w", err)
	}
	slog.InfoContext(ctx, "OutlineRunner: 構成案を取得しました", "title", outline.Title, "slides", len(outline.Slides))
	return outline, nil
}
