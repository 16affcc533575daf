package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSearcher []search.Result

func (s staticSearcher) Search(context.Context, string, int) ([]search.Result, error) {
	return s, nil
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("OutputWriter が無ければエラーになること", func(t *testing.T) {
		_, err := New(ctx, ManagerArgs{Config: config.DefaultConfig()})
		assert.Error(t, err)
	})

	t.Run("APIキーも Generator も無ければエラーになること", func(t *testing.T) {
		_, err := New(ctx, ManagerArgs{Config: config.DefaultConfig(), Writer: publisher.NewLocalWriter()})
		assert.Error(t, err)
	})

	t.Run("省略した依存を既定値で補うこと", func(t *testing.T) {
		gen := generator.Func(func(context.Context, string) (string, error) { return "", nil })
		m, err := New(ctx, ManagerArgs{Config: config.DefaultConfig(), Writer: publisher.NewLocalWriter(), Generator: gen})
		require.NoError(t, err)
		assert.Equal(t, search.Noop{}, m.searcher)
		assert.Equal(t, "Modern", m.theme.Name)
		assert.NotNil(t, m.prompts)
	})
}

func TestManagerGenerate(t *testing.T) {
	gen := generator.Func(func(_ context.Context, p string) (string, error) {
		if strings.Contains(p, "Slide Title:") {
			return `{"title":"Details","bullet_points":["one","two"]}`, nil
		}
		return `{"title":"Go","slides":[
			{"slide_number":1,"title":"Go","type":"title","subtitle":"Gophers"},
			{"slide_number":2,"title":"Basics","type":"content","key_points":["types"]}
		]}`, nil
	})
	m, err := New(context.Background(), ManagerArgs{
		Config:    config.DefaultConfig(),
		Writer:    publisher.NewLocalWriter(),
		Generator: gen,
		Searcher:  staticSearcher{{Title: "Go", Snippet: "A language"}},
		Theme:     theme.Corporate(),
	})
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "go.md")
	res, err := m.Generate(context.Background(), "Go", out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Slides)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "## Details")
	assert.Contains(t, string(b), "- two")

	t.Run("Publish は構成案をそのまま保存すること", func(t *testing.T) {
		outline := domain.Outline{Title: "Solo", Slides: []domain.Slide{
			domain.SectionHeaderSlide{Header: domain.Header{Number: 1, Title: "Part", Type: "section_header"}},
		}}
		res, err := m.Publish(context.Background(), outline, filepath.Join(t.TempDir(), "solo"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(res.Path, ".pptx"))
		assert.Equal(t, 2, res.Slides)
	})
}
