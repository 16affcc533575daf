package pipeline

import (
	"testing"

	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackOutline(t *testing.T) {
	results := []search.Result{
		{Title: "A", Snippet: "first"},
		{Title: "  ", Snippet: "second"},
		{Title: "C"},
		{Title: "D", Snippet: "fourth"},
	}

	t.Run("表紙と slides-1 枚の本文を作ること", func(t *testing.T) {
		o := FallbackOutline("Quantum", results, 4)
		assert.Equal(t, "Quantum", o.Title)
		require.Len(t, o.Slides, 4)

		cover, ok := o.Slides[0].(domain.TitleSlide)
		require.True(t, ok)
		assert.Equal(t, "Quantum", cover.Title)
		assert.Equal(t, "Generated Presentation", cover.Subtitle)

		var titles, texts []string
		for _, s := range o.Slides[1:] {
			cs, ok := s.(domain.ContentSlide)
			require.True(t, ok)
			titles = append(titles, cs.Title)
			texts = append(texts, cs.Body.Text)
		}
		assert.Equal(t, []string{"A", "Topic 2", "C"}, titles)
		assert.Equal(t, []string{"first", "second", "Content from search results"}, texts)
		assert.Equal(t, 4, o.Slides[3].SlideHeader().Number)
	})

	t.Run("検索結果が無ければ表紙だけになること", func(t *testing.T) {
		o := FallbackOutline("Quantum", nil, 10)
		require.Len(t, o.Slides, 1)
		assert.Equal(t, domain.KindTitle, o.First().Kind())
	})

	t.Run("スライド数が1以下でも表紙は残すこと", func(t *testing.T) {
		assert.Len(t, FallbackOutline("Q", results, 1).Slides, 1)
		assert.Len(t, FallbackOutline("Q", results, 0).Slides, 1)
	})
}
