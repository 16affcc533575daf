package runner

import (
	"context"
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/search"
)

// SearchRunner はトピックの下調べを行うのだ。
// 検索の失敗は警告だけ出して「文脈なし」で続行するのだ。
type SearchRunner struct {
	searcher search.Searcher
	limit    int
}

// NewSearchRunner は SearchRunner を作成するのだ。
func NewSearchRunner(searcher search.Searcher, limit int) *SearchRunner {
	return &SearchRunner{searcher: searcher, limit: limit}
}

// Run は検索結果を返すのだ。失敗時は nil を返すのだ。
func (r *SearchRunner) Run(ctx context.Context, topic string) []search.Result {
	results, err := r.searcher.Search(ctx, topic, r.limit)
	if err != nil {
		slog.WarnContext(ctx, "検索に失敗したため検索結果なしで続行するのだ", "topic", topic, "error", err)
		return nil
	}
	if len(results) == 0 {
		slog.WarnContext(ctx, "検索結果が0件だったのだ", "topic", topic)
		return nil
	}
	slog.InfoContext(ctx, "検索結果を取得したのだ", "count", len(results))
	for i, res := range results {
		slog.DebugContext(ctx, "検索結果", "rank", i+1, "title", res.Title, "url", res.URL)
	}
	return results
}
