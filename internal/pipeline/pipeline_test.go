package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shouni/go-slide-kit/internal/builder"
	"github.com/shouni/go-slide-kit/internal/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/parser"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	results []search.Result
	err     error
}

func (f fakeSearcher) Search(context.Context, string, int) ([]search.Result, error) {
	return f.results, f.err
}

const outlineJSON = `Here you go: {"title":"Solar Energy","slides":[
	{"slide_number":1,"title":"Solar Energy","type":"title","subtitle":"An overview"},
	{"slide_number":2,"title":"Why Solar","type":"content","key_points":["cheap","clean"]},
	{"slide_number":3,"title":"Timeline","type":"timeline","key_points":["2000","2020"]}
]}`

const slideJSON = `{"title":"Why Solar Matters","bullet_points":[{"point":"Cheap","details":"Costs fell 90%"},"Clean"]}`

func newAppContext(t *testing.T, output string, s search.Searcher, gen generator.TextGenerator) *builder.AppContext {
	t.Helper()
	pb, err := prompts.NewTextPromptBuilder()
	require.NoError(t, err)

	cfg := &config.Config{
		GeminiModel:       config.DefaultModel,
		Temperature:       0.7,
		MaxTokens:         2000,
		MaxSearchResults:  5,
		DefaultSlideCount: 3,
		Options: config.GenerateOptions{
			Topic:      "Solar Energy",
			OutputFile: output,
			Theme:      config.DefaultTheme,
		},
	}
	appCtx := builder.NewAppContext(cfg, theme.Modern(), s, gen, pb, publisher.NewLocalWriter())
	return &appCtx
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	results := []search.Result{
		{Title: "Solar 101", Snippet: "Panels convert light.", URL: "https://example.com/1", Source: "SerpAPI"},
		{Title: "", Snippet: "", URL: "https://example.com/2", Source: "SerpAPI"},
		{Title: "Third", Snippet: "Unused", URL: "https://example.com/3", Source: "SerpAPI"},
	}

	t.Run("検索から保存までを通しで実行すること", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "deck.md")
		var calls atomic.Int32
		gen := generator.Func(func(_ context.Context, p string) (string, error) {
			calls.Add(1)
			if strings.Contains(p, "Slide Title:") {
				return slideJSON, nil
			}
			return outlineJSON, nil
		})

		res, err := Generate(ctx, newAppContext(t, out, fakeSearcher{results: results}, gen))
		require.NoError(t, err)
		assert.Equal(t, out, res.Path)
		assert.Equal(t, 3, res.Slides)
		assert.EqualValues(t, 3, calls.Load())

		b, err := os.ReadFile(out)
		require.NoError(t, err)
		md := string(b)
		assert.True(t, strings.HasPrefix(md, "# Solar Energy\n"))
		assert.Contains(t, md, "An overview")
		assert.Contains(t, md, "## Why Solar Matters")
		assert.Contains(t, md, "- Cheap: Costs fell 90%")
		assert.Equal(t, 1, strings.Count("\n"+md, "\n# "), "表紙は1枚だけ")
	})

	t.Run("構成案が壊れていたら検索結果から代替デッキを作ること", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "fallback.md")
		gen := generator.Func(func(context.Context, string) (string, error) {
			return `{"title":"x","slides":[]}`, nil
		})

		res, err := Generate(ctx, newAppContext(t, out, fakeSearcher{results: results}, gen))
		require.NoError(t, err)
		assert.Equal(t, 3, res.Slides)

		b, err := os.ReadFile(out)
		require.NoError(t, err)
		md := string(b)
		assert.Contains(t, md, "# Solar Energy")
		assert.Contains(t, md, "Generated Presentation")
		assert.Contains(t, md, "## Solar 101")
		assert.Contains(t, md, "Panels convert light.")
		assert.Contains(t, md, "## Topic 2")
		assert.Contains(t, md, "Content from search results")
		assert.NotContains(t, md, "Third")
	})

	t.Run("検索に失敗しても検索結果なしで続行すること", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "nosearch.md")
		gen := generator.Func(func(context.Context, string) (string, error) {
			return "", errors.New("quota exceeded")
		})

		res, err := Generate(ctx, newAppContext(t, out, fakeSearcher{err: errors.New("down")}, gen))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Slides)
	})

	t.Run("取り消されたら代替デッキを作らずに中断すること", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		out := filepath.Join(t.TempDir(), "cancel.md")
		gen := generator.Func(func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		})

		_, err := Generate(cctx, newAppContext(t, out, search.Noop{}, gen))
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, out)
	})

	t.Run("保存の失敗は PersistError として返すこと", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
		gen := generator.Func(func(context.Context, string) (string, error) { return "", errors.New("down") })

		_, err := Generate(ctx, newAppContext(t, filepath.Join(blocker, "deck.md"), search.Noop{}, gen))
		var pe *domain.PersistError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestOutline(t *testing.T) {
	ctx := context.Background()
	gen := generator.Func(func(context.Context, string) (string, error) { return outlineJSON, nil })

	t.Run("出力先が - なら書き込み先に JSON を出すこと", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Outline(ctx, newAppContext(t, "-", search.Noop{}, gen), &buf))

		o, err := parser.DecodeOutline(buf.String())
		require.NoError(t, err)
		assert.Equal(t, "Solar Energy", o.Title)
		require.Len(t, o.Slides, 3)
		assert.Equal(t, "timeline", o.Slides[2].SlideHeader().Type)
	})

	t.Run("出力先があればファイルに書き出すこと", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "outline", "solar.json")
		var buf bytes.Buffer
		require.NoError(t, Outline(ctx, newAppContext(t, out, search.Noop{}, gen), &buf))
		assert.Zero(t, buf.Len())

		b, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, parser.ValidOutline(string(b)))
	})

	t.Run("構成案の失敗はそのまま返すこと", func(t *testing.T) {
		bad := generator.Func(func(context.Context, string) (string, error) { return "no json", nil })
		err := Outline(ctx, newAppContext(t, "-", search.Noop{}, bad), &bytes.Buffer{})
		var pe *domain.ParseError
		assert.ErrorAs(t, err, &pe)
	})
}

func TestSetupAppContext(t *testing.T) {
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "deck.md")
	cfg := &config.Config{
		GeminiAPIKey:      "test-key",
		GeminiModel:       config.DefaultModel,
		Temperature:       0.7,
		MaxTokens:         2000,
		MaxSearchResults:  5,
		DefaultSlideCount: 3,
		Options: config.GenerateOptions{
			Topic:       "Solar Energy",
			OutputFile:  out,
			Theme:       "corporate",
			Concurrency: 1,
		},
	}

	appCtx, cleanup, err := setupAppContext(ctx, cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	assert.Equal(t, theme.Corporate().Name, appCtx.Theme.Name)
	require.NotNil(t, appCtx.Writer)
	require.NoError(t, appCtx.Writer.Write(ctx, out, strings.NewReader("# x\n"), "text/markdown"))
	assert.FileExists(t, out)
}
