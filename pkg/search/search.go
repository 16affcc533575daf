// Package search はスライドの下調べに使うウェブ検索クライアントを提供します。
package search

import "context"

// Result は検索結果1件です。
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
	Source  string `json:"source"`
}

// Searcher はクエリに対する検索結果を返します。
// 結果が空でもエラーではなく「文脈なし」として扱われます。
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}

// Noop は常に空の結果を返す Searcher です。API キーが無い場合に使います。
type Noop struct{}

func (Noop) Search(context.Context, string, int) ([]Result, error) {
	return nil, nil
}
