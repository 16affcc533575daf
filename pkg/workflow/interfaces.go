package workflow

import (
	"context"

	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/runner"
	"github.com/shouni/go-slide-kit/pkg/search"
)

// Workflow は、スライド生成ワークフローの各工程を担当するRunnerを構築するためのインターフェースを定義します。
type Workflow interface {
	BuildOutlineRunner() (OutlineRunner, error)
	BuildContentRunner() (ContentRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// OutlineRunner は、トピックと検索結果から構成案を生成する責務を持ちます。
type OutlineRunner interface {
	Run(ctx context.Context, topic string, results []search.Result) (*domain.Outline, error)
}

// ContentRunner は、構成案の各スライドに詳細な本文を付ける責務を持ちます。
type ContentRunner interface {
	Run(ctx context.Context, outline domain.Outline, results []search.Result) (domain.Outline, error)
}

// PublishRunner は、構成案をデッキに描画して保存する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, outline domain.Outline, outputPath string) (runner.PublishResult, error)
}

var _ Workflow = (*Manager)(nil)
