package runner

import (
	"context"

	"github.com/shouni/go-slide-kit/pkg/domain"
	kitrunner "github.com/shouni/go-slide-kit/pkg/runner"
	"github.com/shouni/go-slide-kit/pkg/search"
)

// OutlineRunner は構成案の生成処理のインターフェースなのだ。
type OutlineRunner interface {
	Run(ctx context.Context, topic string, results []search.Result) (*domain.Outline, error)
}

// ContentRunner は本文スライドの詳細化処理のインターフェースなのだ。
type ContentRunner interface {
	Run(ctx context.Context, outline domain.Outline, results []search.Result) (domain.Outline, error)
}

// PublisherRunner はデッキの組み立てと保存処理のインターフェースなのだ。
type PublisherRunner interface {
	Run(ctx context.Context, outline domain.Outline, outputPath string) (kitrunner.PublishResult, error)
}

var (
	_ OutlineRunner   = (*kitrunner.SlideOutlineRunner)(nil)
	_ ContentRunner   = (*kitrunner.SlideContentRunner)(nil)
	_ PublisherRunner = (*kitrunner.DeckPublishRunner)(nil)
)
