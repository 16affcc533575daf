package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/director"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// PublishResult は保存されたデッキの情報です。
type PublishResult struct {
	Path        string
	Slides      int
	ContentType string
}

// DeckPublishRunner は pkg/publisher を利用してデッキを組み立て、保存します。
type DeckPublishRunner struct {
	theme  *theme.Theme
	writer publisher.OutputWriter
}

// NewDeckPublishRunner は DeckPublishRunner を作成します。
func NewDeckPublishRunner(t *theme.Theme, writer publisher.OutputWriter) *DeckPublishRunner {
	return &DeckPublishRunner{
		theme:  t,
		writer: writer,
	}
}

// Run は出力パスの拡張子でバックエンドを選び、構成案を描画して保存します。
func (pr *DeckPublishRunner) Run(ctx context.Context, outline domain.Outline, outputPath string) (PublishResult, error) {
	path := publisher.ResolveOutputPath(outputPath)
	doc, err := publisher.NewDocument(path, pr.theme)
	if err != nil {
		return PublishResult{}, err
	}

	slog.InfoContext(ctx, "PublishRunner: デッキを組み立てます", "theme", pr.theme.Name, "format", doc.Extension())
	deck := publisher.NewDeck(doc, director.NewLayoutResolver(pr.theme), pr.writer)
	if err := deck.Build(ctx, outline); err != nil {
		return PublishResult{}, fmt.Errorf("デッキの組み立てに失敗しました: %w", err)
	}
	if err := deck.Save(ctx, path); err != nil {
		return PublishResult{}, err
	}

	return PublishResult{
		Path:        path,
		Slides:      deck.Count(),
		ContentType: doc.ContentType(),
	}, nil
}
