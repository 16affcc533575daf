package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-slide-kit/pkg/search"

	"github.com/stretchr/testify/assert"
)

type stubSearcher struct {
	results []search.Result
	err     error
	limit   int
}

func (s *stubSearcher) Search(_ context.Context, _ string, limit int) ([]search.Result, error) {
	s.limit = limit
	return s.results, s.err
}

func TestSearchRunner(t *testing.T) {
	ctx := context.Background()

	t.Run("検索結果をそのまま返すこと", func(t *testing.T) {
		s := &stubSearcher{results: []search.Result{{Title: "a"}, {Title: "b"}}}
		got := NewSearchRunner(s, 7).Run(ctx, "topic")
		assert.Len(t, got, 2)
		assert.Equal(t, 7, s.limit)
	})

	t.Run("失敗しても nil で続行すること", func(t *testing.T) {
		s := &stubSearcher{err: errors.New("timeout")}
		assert.Nil(t, NewSearchRunner(s, 5).Run(ctx, "topic"))
	})

	t.Run("Noop は文脈なしになること", func(t *testing.T) {
		assert.Nil(t, NewSearchRunner(search.Noop{}, 5).Run(ctx, "topic"))
	})
}
