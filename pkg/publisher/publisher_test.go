package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-slide-kit/pkg/backend/markdown"
	"github.com/shouni/go-slide-kit/pkg/backend/memory"
	"github.com/shouni/go-slide-kit/pkg/backend/pdf"
	"github.com/shouni/go-slide-kit/pkg/backend/pptx"
	"github.com/shouni/go-slide-kit/pkg/director"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	writes      int
	path        string
	contentType string
	data        []byte
	err         error
}

func (w *recordingWriter) Write(_ context.Context, path string, r io.Reader, contentType string) error {
	if w.err != nil {
		return w.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	w.writes++
	w.path = path
	w.contentType = contentType
	w.data = b
	return nil
}

func newTestDeck(t *testing.T) (*Deck, *memory.Document, *recordingWriter) {
	t.Helper()
	doc := memory.New()
	w := &recordingWriter{}
	return NewDeck(doc, director.NewLayoutResolver(theme.Modern()), w), doc, w
}

func TestBuildTitleSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("表紙のみのアウトラインは1枚になること", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		outline := domain.Outline{
			Title: "AI",
			Slides: []domain.Slide{
				domain.TitleSlide{Header: domain.Header{Number: 1, Title: "AI", Type: "title"}, Subtitle: "Intro"},
			},
		}
		require.NoError(t, deck.Build(ctx, outline))

		assert.Equal(t, 1, deck.Count())
		require.Len(t, doc.Slides, 1)
		s := doc.Slides[0]
		assert.Equal(t, 0, s.LayoutID)
		assert.Equal(t, "AI", s.Placeholder(0).Text)
		assert.Equal(t, "Intro", s.Placeholder(1).Text)
		assert.True(t, s.Placeholder(0).Format.Bold)
		assert.Equal(t, theme.AlignCenter, s.Placeholder(1).Format.Align)
	})

	t.Run("先頭が表紙でなければ合成し、後続の表紙は飛ばすこと", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		outline := domain.Outline{
			Title: "Solar Power",
			Slides: []domain.Slide{
				domain.ContentSlide{Header: domain.Header{Number: 1, Title: "Why", Type: "content"}, Body: domain.Body{KeyPoints: []string{"cheap"}}},
				domain.TitleSlide{Header: domain.Header{Number: 2, Title: "Again", Type: "title"}},
				domain.SectionHeaderSlide{Header: domain.Header{Number: 3, Title: "Part 2", Type: "section_header"}},
			},
		}
		require.NoError(t, deck.Build(ctx, outline))

		require.Len(t, doc.Slides, 3)
		assert.Equal(t, 3, deck.Count())
		assert.Equal(t, []int{0, 1, 2}, []int{doc.Slides[0].LayoutID, doc.Slides[1].LayoutID, doc.Slides[2].LayoutID})
		assert.Equal(t, "Solar Power", doc.Slides[0].Placeholder(0).Text)
		assert.Equal(t, domain.DefaultSubtitle, doc.Slides[0].Placeholder(1).Text)
		assert.Equal(t, []string{"cheap"}, doc.Slides[1].Placeholder(1).Paragraphs)

		titles := 0
		for _, s := range doc.Slides {
			if s.LayoutID == 0 {
				titles++
			}
		}
		assert.Equal(t, 1, titles)
	})

	t.Run("空のタイトルと副題は既定値で補うこと", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		outline := domain.Outline{
			Title:  "Deck",
			Slides: []domain.Slide{domain.TitleSlide{Header: domain.Header{Number: 1, Type: "title"}}},
		}
		require.NoError(t, deck.Build(ctx, outline))
		assert.Equal(t, "Deck", doc.Slides[0].Placeholder(0).Text)
		assert.Equal(t, domain.DefaultSubtitle, doc.Slides[0].Placeholder(1).Text)
	})

	t.Run("副題は content から拾うこと", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		s := domain.TitleSlide{
			Header: domain.Header{Number: 1, Title: "T", Type: "title"},
			Body:   domain.Body{Content: &domain.ContentBlock{Subtitle: "from content"}},
		}
		require.NoError(t, deck.AddSlide(ctx, s))
		assert.Equal(t, "from content", doc.Slides[0].Placeholder(1).Text)
	})
}

func TestAddContentSlide(t *testing.T) {
	ctx := context.Background()

	t.Run("空の箇条書きを除いて書式付きで書き込むこと", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		s := domain.ContentSlide{
			Header: domain.Header{Number: 2, Title: "Benefits", Type: "content"},
			Body: domain.Body{
				HasBulletPoints: true,
				BulletPoints: []domain.BulletPoint{
					domain.PlainBullet("Fast"),
					domain.PlainBullet("   "),
					domain.StructuredBullet("Cheap", "50% less"),
				},
			},
		}
		require.NoError(t, deck.AddSlide(ctx, s))

		body := doc.Slides[0].Placeholder(1)
		assert.Equal(t, []string{"Fast", "Cheap: 50% less"}, body.Paragraphs)
		require.NotNil(t, body.Format.Spacing)
		assert.InDelta(t, 4.0, body.Format.Spacing.After, 1e-9)
		assert.Equal(t, theme.AutoFitShrink, body.Format.AutoFit)
		assert.Equal(t, "Benefits", doc.Slides[0].Placeholder(0).Text)
	})

	t.Run("箇条書きが無ければ本文テキストか既定文言になること", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		require.NoError(t, deck.AddSlide(ctx, domain.ContentSlide{Header: domain.Header{Type: "content"}, Body: domain.Body{Text: "plain body"}}))
		require.NoError(t, deck.AddSlide(ctx, domain.ContentSlide{Header: domain.Header{Type: "content"}}))

		assert.Equal(t, "plain body", doc.Slides[0].Placeholder(1).Text)
		assert.Equal(t, "Content", doc.Slides[1].Placeholder(0).Text)
		assert.Equal(t, "Content goes here", doc.Slides[1].Placeholder(1).Text)
		assert.Nil(t, doc.Slides[1].Placeholder(1).Format.Spacing)
	})

	t.Run("未知のレイアウトは content に切り替えて続行すること", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		s := domain.ContentSlide{Header: domain.Header{Number: 4, Title: "History", Type: "timeline"}}
		require.NoError(t, deck.AddSlide(ctx, s))
		assert.Equal(t, 1, doc.Slides[0].LayoutID)
		assert.Equal(t, 1, deck.Count())
	})

	t.Run("テーマにある未知の種別はそのレイアウトを使うこと", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		require.NoError(t, deck.AddSlide(ctx, domain.ContentSlide{Header: domain.Header{Title: "Pros", Type: "two_content"}}))
		assert.Equal(t, 3, doc.Slides[0].LayoutID)
	})

	t.Run("まとめは content レイアウトで描画すること", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		s := domain.ConclusionSlide{
			Header: domain.Header{Title: "Wrap up", Type: "conclusion"},
			Body:   domain.Body{KeyPoints: []string{"done"}},
		}
		require.NoError(t, deck.AddSlide(ctx, s))
		assert.Equal(t, 1, doc.Slides[0].LayoutID)
		assert.Equal(t, []string{"done"}, doc.Slides[0].Placeholder(1).Paragraphs)
	})

	t.Run("セクション見出しはタイトルのみ", func(t *testing.T) {
		deck, doc, _ := newTestDeck(t)
		require.NoError(t, deck.AddSlide(ctx, domain.SectionHeaderSlide{Header: domain.Header{Type: "section_header"}}))
		assert.Equal(t, 2, doc.Slides[0].LayoutID)
		assert.Equal(t, "Section", doc.Slides[0].Placeholder(0).Text)
		assert.Nil(t, doc.Slides[0].Placeholder(1))
	})
}

func TestRenderError(t *testing.T) {
	deck, doc, _ := newTestDeck(t)
	cause := errors.New("backend down")
	doc.FailCreate = cause

	err := deck.AddSlide(context.Background(), domain.SectionHeaderSlide{Header: domain.Header{Title: "x"}})
	var re *domain.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "create", re.Stage)
	assert.Equal(t, 1, re.SlideNumber)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, deck.Count())
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("保存は1回だけ", func(t *testing.T) {
		deck, _, w := newTestDeck(t)
		require.NoError(t, deck.AddSlide(ctx, domain.SectionHeaderSlide{Header: domain.Header{Title: "Only"}}))

		require.NoError(t, deck.Save(ctx, "out/deck.json"))
		assert.ErrorIs(t, deck.Save(ctx, "out/deck.json"), domain.ErrDeckSaved)

		assert.Equal(t, 1, w.writes)
		assert.Equal(t, "out/deck.json", w.path)
		assert.Equal(t, "application/json", w.contentType)
		var decoded []memory.Slide
		require.NoError(t, json.Unmarshal(w.data, &decoded))
		assert.Len(t, decoded, 1)
	})

	t.Run("取り消し済みなら書き出さずに PersistError を返すこと", func(t *testing.T) {
		deck, _, w := newTestDeck(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		err := deck.Save(cctx, "deck.json")
		var pe *domain.PersistError
		require.ErrorAs(t, err, &pe)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, w.writes)
	})

	t.Run("書き出しの失敗は PersistError になり再試行できること", func(t *testing.T) {
		deck, _, w := newTestDeck(t)
		w.err = errors.New("read-only")

		err := deck.Save(ctx, "deck.json")
		var pe *domain.PersistError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "deck.json", pe.Path)

		w.err = nil
		assert.NoError(t, deck.Save(ctx, "deck.json"))
	})
}

func TestNewDocument(t *testing.T) {
	th := theme.Modern()

	doc, err := NewDocument("deck", th)
	require.NoError(t, err)
	assert.IsType(t, &pptx.Document{}, doc)

	doc, err = NewDocument("out/Deck.PDF", th)
	require.NoError(t, err)
	assert.IsType(t, &pdf.Document{}, doc)

	doc, err = NewDocument("notes.md", th)
	require.NoError(t, err)
	assert.IsType(t, &markdown.Document{}, doc)

	_, err = NewDocument("deck.docx", th)
	assert.ErrorContains(t, err, ".docx")

	assert.Equal(t, "deck.pptx", ResolveOutputPath("deck"))
	assert.Equal(t, "deck.pdf", ResolveOutputPath("deck.pdf"))
}

func TestLocalWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "deck.md")
	require.NoError(t, NewLocalWriter().Write(context.Background(), path, strings.NewReader("# hi\n"), "text/markdown"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(b))

	t.Run("クライアントが無ければ GCS への書き込みはエラーになること", func(t *testing.T) {
		err := NewLocalWriter().Write(context.Background(), "gs://bucket/deck.md", strings.NewReader("# hi\n"), "text/markdown")
		assert.Error(t, err)
	})
}
