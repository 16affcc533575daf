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

	"golang.org/x/sync/errgroup"
)

// SlideContentRunner は本文スライドごとに詳細コンテンツを生成して構成案に反映します。
type SlideContentRunner struct {
	cfg           config.Config
	promptBuilder prompts.PromptBuilder
	generator     generator.TextGenerator
}

// NewSlideContentRunner は依存関係を注入して初期化します。
func NewSlideContentRunner(cfg config.Config, pb prompts.PromptBuilder, gen generator.TextGenerator) *SlideContentRunner {
	return &SlideContentRunner{
		cfg:           cfg,
		promptBuilder: pb,
		generator:     gen,
	}
}

// Eligible は詳細コンテンツを生成する対象かを返します。
// 表紙を除き、key_points を持つ本文スライドが対象です。
func Eligible(s domain.Slide) bool {
	if _, ok := s.(domain.TitleSlide); ok {
		return false
	}
	body, ok := domain.BodyOf(s)
	return ok && len(body.KeyPoints) > 0
}

// Run は対象スライドを cfg.Concurrency 件ずつ並行に処理します。
// 1枚の失敗は警告を出してそのスライドの key_points を残すだけで、全体は失敗しません。
// 返すエラーはコンテキストの取り消しのみです。
func (r *SlideContentRunner) Run(ctx context.Context, outline domain.Outline, results []search.Result) (domain.Outline, error) {
	slides := make([]domain.Slide, len(outline.Slides))
	copy(slides, outline.Slides)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(max(r.cfg.Concurrency, 1))

	for i, s := range outline.Slides {
		if !Eligible(s) {
			continue
		}
		eg.Go(func() error {
			enriched, err := r.enrich(egCtx, s, results)
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.WarnContext(egCtx, "詳細コンテンツの生成に失敗したため key_points を使います",
					"slide_number", s.SlideHeader().Number,
					"title", s.SlideHeader().Title,
					"error", err,
				)
				return nil
			}
			slides[i] = enriched
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return outline, err
	}

	outline.Slides = slides
	return outline, nil
}

func (r *SlideContentRunner) enrich(ctx context.Context, s domain.Slide, results []search.Result) (domain.Slide, error) {
	h := s.SlideHeader()
	body, _ := domain.BodyOf(s)

	prompt, err := r.promptBuilder.BuildSlideContent(h.Title, body.KeyPoints, results)
	if err != nil {
		return nil, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.DebugContext(ctx, "ContentRunner: 詳細コンテンツを生成します", "slide_number", h.Number, "title", h.Title)
	raw, err := r.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	content, err := parser.DecodeSlideContent(raw)
	if err != nil {
		return nil, err
	}
	return content.ApplyTo(s), nil
}
