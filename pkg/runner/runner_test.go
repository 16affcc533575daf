package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptBuilder(t *testing.T) *prompts.TextPromptBuilder {
	t.Helper()
	pb, err := prompts.NewTextPromptBuilder()
	require.NoError(t, err)
	return pb
}

func TestSlideOutlineRunner(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultConfig()
	cfg.SlideCount = 3

	t.Run("前置きの付いた応答から構成案を復元すること", func(t *testing.T) {
		var prompt string
		gen := generator.Func(func(_ context.Context, p string) (string, error) {
			prompt = p
			return `Sure! Here it is: {"title":"AI","slides":[
				{"slide_number":1,"title":"AI","type":"title","subtitle":"Intro"},
				{"slide_number":2,"title":"Overview","type":"content","key_points":["a","b"]}
			]} Hope this helps.`, nil
		})
		r := NewSlideOutlineRunner(cfg, newPromptBuilder(t), gen)

		outline, err := r.Run(ctx, "AI", []search.Result{{Title: "T1", Snippet: "S1"}})
		require.NoError(t, err)
		assert.Equal(t, "AI", outline.Title)
		require.Len(t, outline.Slides, 2)
		assert.Equal(t, domain.KindTitle, outline.Slides[0].Kind())
		assert.Contains(t, prompt, "1. T1: S1")
		assert.Contains(t, prompt, "Generate exactly 3 slides")
	})

	t.Run("スライドが空なら構造エラーになること", func(t *testing.T) {
		gen := generator.Func(func(context.Context, string) (string, error) {
			return `Sure! {"title":"T","slides":[]}`, nil
		})
		_, err := NewSlideOutlineRunner(cfg, newPromptBuilder(t), gen).Run(ctx, "T", nil)
		var se *domain.StructureError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "outline", se.Kind)
	})

	t.Run("JSONが無ければ解析エラーになること", func(t *testing.T) {
		gen := generator.Func(func(context.Context, string) (string, error) {
			return "I cannot help with that.", nil
		})
		_, err := NewSlideOutlineRunner(cfg, newPromptBuilder(t), gen).Run(ctx, "T", nil)
		var pe *domain.ParseError
		assert.ErrorAs(t, err, &pe)
	})

	t.Run("生成の失敗はそのまま包んで返すこと", func(t *testing.T) {
		cause := errors.New("quota exceeded")
		gen := generator.Func(func(context.Context, string) (string, error) { return "", cause })
		_, err := NewSlideOutlineRunner(cfg, newPromptBuilder(t), gen).Run(ctx, "T", nil)
		assert.ErrorIs(t, err, cause)
	})
}

func sampleOutline() domain.Outline {
	return domain.Outline{
		Title: "Energy",
		Slides: []domain.Slide{
			domain.TitleSlide{Header: domain.Header{Number: 1, Title: "Energy", Type: "title"}, Body: domain.Body{KeyPoints: []string{"x"}}},
			domain.ContentSlide{Header: domain.Header{Number: 2, Title: "Solar", Type: "content"}, Body: domain.Body{KeyPoints: []string{"panels"}}},
			domain.ContentSlide{Header: domain.Header{Number: 3, Title: "Broken", Type: "content"}, Body: domain.Body{KeyPoints: []string{"kp1", "kp2"}}},
			domain.SectionHeaderSlide{Header: domain.Header{Number: 4, Title: "Part", Type: "section_header"}},
			domain.ContentSlide{Header: domain.Header{Number: 5, Title: "Empty", Type: "content"}},
		},
	}
}

func TestSlideContentRunner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Concurrency = 2

	t.Run("対象スライドだけを生成し、失敗したスライドは元のまま残すこと", func(t *testing.T) {
		var calls atomic.Int32
		gen := generator.Func(func(_ context.Context, p string) (string, error) {
			calls.Add(1)
			if strings.Contains(p, "Slide Title: Broken") {
				return "not json at all", nil
			}
			return `{"title":"Solar Power","bullet_points":[{"point":"Cheap","details":"Costs fell"}],"statistics":["90%"],"conclusion":"Go solar"}`, nil
		})
		in := sampleOutline()

		out, err := NewSlideContentRunner(cfg, newPromptBuilder(t), gen).Run(context.Background(), in, nil)
		require.NoError(t, err)
		assert.EqualValues(t, 2, calls.Load())
		require.Len(t, out.Slides, 5)

		solar, ok := out.Slides[1].(domain.ContentSlide)
		require.True(t, ok)
		assert.Equal(t, "Solar Power", solar.Title)
		assert.True(t, solar.Body.HasBulletPoints)
		assert.Equal(t, []string{"panels"}, solar.Body.KeyPoints)
		assert.Equal(t, "Go solar", solar.Body.Conclusion)

		assert.Equal(t, in.Slides[2], out.Slides[2])
		assert.Equal(t, in.Slides[0], out.Slides[0])
		assert.Equal(t, in.Slides[4], out.Slides[4])

		// 入力の構成案は書き換えないこと
		assert.Equal(t, "Solar", in.Slides[1].SlideHeader().Title)
	})

	t.Run("取り消されたら中断すること", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gen := generator.Func(func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		})
		_, err := NewSlideContentRunner(cfg, newPromptBuilder(t), gen).Run(ctx, sampleOutline(), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEligible(t *testing.T) {
	s := sampleOutline().Slides
	assert.False(t, Eligible(s[0]))
	assert.True(t, Eligible(s[1]))
	assert.False(t, Eligible(s[3]))
	assert.False(t, Eligible(s[4]))
	assert.True(t, Eligible(domain.ConclusionSlide{Body: domain.Body{KeyPoints: []string{"k"}}}))
}

func TestDeckPublishRunner(t *testing.T) {
	dir := t.TempDir()
	r := NewDeckPublishRunner(theme.Corporate(), publisher.NewLocalWriter())

	res, err := r.Run(context.Background(), sampleOutline(), filepath.Join(dir, "out", "deck.md"))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Slides)
	assert.Equal(t, "text/markdown; charset=utf-8", res.ContentType)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "# Energy\n"))
	assert.Contains(t, string(b), "## Broken")

	_, err = r.Run(context.Background(), sampleOutline(), filepath.Join(dir, "deck.docx"))
	assert.ErrorContains(t, err, ".docx")
}
