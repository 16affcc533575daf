package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/director"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

const (
	defaultPresentationTitle = "Presentation Title"
	defaultContentTitle      = "Content"
	defaultContentText       = "Content goes here"
	defaultSectionTitle      = "Section"
)

// Deck は1回の実行で組み立てるスライドデッキです。
// 単一のゴルーチンから順に AddSlide を呼び、最後に Save を1回だけ呼びます。
type Deck struct {
	doc      backend.Document
	resolver *director.LayoutResolver
	writer   OutputWriter

	count int
	saved bool
}

// NewDeck は新しい Deck を作成します。
func NewDeck(doc backend.Document, resolver *director.LayoutResolver, writer OutputWriter) *Deck {
	return &Deck{
		doc:      doc,
		resolver: resolver,
		writer:   writer,
	}
}

// Count は描画に成功したスライドの枚数を返します。
func (d *Deck) Count() int {
	return d.count
}

// AddSlide はスライドの種別に応じたルーチンで1枚描画します。
// バックエンドの失敗は *domain.RenderError として返されます。
func (d *Deck) AddSlide(ctx context.Context, s domain.Slide) error {
	var err error
	switch v := s.(type) {
	case domain.TitleSlide:
		err = d.addTitle(ctx, v, subtitleOf(v))
	case domain.ContentSlide:
		layout := theme.LayoutContent
		if !v.Recognized() && v.Type != "" {
			slog.WarnContext(ctx, "未知のスライド種別のため content のルーチンで描画します", "type", v.Type, "title", v.Title)
			layout = v.Type
		}
		err = d.addContent(ctx, layout, v.Header, v.Body)
	case domain.ConclusionSlide:
		err = d.addContent(ctx, string(domain.KindConclusion), v.Header, v.Body)
	case domain.SectionHeaderSlide:
		err = d.addSection(ctx, v)
	default:
		return fmt.Errorf("未対応のスライドです: %T", s)
	}
	if err != nil {
		return err
	}

	d.count++
	slog.DebugContext(ctx, "スライドを追加しました", "kind", s.Kind(), "title", s.SlideHeader().Title, "count", d.count)
	return nil
}

// subtitleOf は副題が空なら content の subtitle、次に文字列の content を使います。
func subtitleOf(s domain.TitleSlide) string {
	if s.Subtitle != "" {
		return s.Subtitle
	}
	if c := s.Body.Content; c != nil && c.Subtitle != "" {
		return c.Subtitle
	}
	return s.Body.Text
}

func (d *Deck) addTitle(ctx context.Context, s domain.TitleSlide, subtitle string) error {
	layout, err := d.layout(ctx, theme.LayoutTitle)
	if err != nil {
		return err
	}
	slide, err := d.create(layout)
	if err != nil {
		return err
	}

	title := s.Title
	if title == "" {
		title = defaultPresentationTitle
	}
	if err := d.writeText(slide, layout.TitlePlaceholderIdx, title, theme.RoleTitle); err != nil {
		return err
	}
	if subtitle == "" {
		return nil
	}
	return d.writeText(slide, layout.ContentPlaceholderIdx, subtitle, theme.RoleSubtitle)
}

func (d *Deck) addContent(ctx context.Context, name string, h domain.Header, body domain.Body) error {
	layout, err := d.layout(ctx, name)
	if err != nil {
		return err
	}
	slide, err := d.create(layout)
	if err != nil {
		return err
	}

	title := h.Title
	if title == "" {
		title = defaultContentTitle
	}
	if err := d.writeText(slide, layout.TitlePlaceholderIdx, title, theme.RoleTitle); err != nil {
		return err
	}

	bullets := nonBlank(director.ExtractBullets(body))
	if len(bullets) > 0 {
		return d.writeParagraphs(slide, layout.ContentPlaceholderIdx, bullets)
	}

	text := body.Text
	if strings.TrimSpace(text) == "" {
		text = defaultContentText
	}
	return d.writeText(slide, layout.ContentPlaceholderIdx, text, theme.RoleBody)
}

func (d *Deck) addSection(ctx context.Context, s domain.SectionHeaderSlide) error {
	layout, err := d.layout(ctx, theme.LayoutSectionHeader)
	if err != nil {
		return err
	}
	slide, err := d.create(layout)
	if err != nil {
		return err
	}

	title := s.Title
	if title == "" {
		title = defaultSectionTitle
	}
	return d.writeText(slide, layout.TitlePlaceholderIdx, title, theme.RoleTitle)
}

// layout はレイアウトを解決し、テーマに無い名前なら content に切り替えます。
func (d *Deck) layout(ctx context.Context, name string) (theme.SlideLayout, error) {
	l, err := d.resolver.Resolve(name)
	if err == nil {
		return l, nil
	}

	var unknown *domain.UnknownLayoutError
	if errors.As(err, &unknown) && name != theme.LayoutContent {
		slog.WarnContext(ctx, "レイアウトが見つからないため content を使います", "layout", name, "available", unknown.Available)
		if l, err = d.resolver.Resolve(theme.LayoutContent); err == nil {
			return l, nil
		}
	}
	return theme.SlideLayout{}, d.renderError("layout", err)
}

func (d *Deck) create(layout theme.SlideLayout) (backend.Slide, error) {
	slide, err := d.doc.CreateSlide(layout.LayoutID)
	if err != nil {
		return nil, d.renderError("create", err)
	}
	return slide, nil
}

func (d *Deck) writeText(slide backend.Slide, idx int, text string, role theme.Role) error {
	if idx == theme.NoPlaceholder {
		return nil
	}
	if err := slide.SetText(idx, text); err != nil {
		return d.renderError("text", err)
	}
	if err := slide.ApplyFormatting(idx, d.resolver.Formatting(role)); err != nil {
		return d.renderError("format", err)
	}
	return nil
}

func (d *Deck) writeParagraphs(slide backend.Slide, idx int, paragraphs []string) error {
	if idx == theme.NoPlaceholder {
		return nil
	}
	if err := slide.SetParagraphs(idx, paragraphs); err != nil {
		return d.renderError("bullets", err)
	}
	if err := slide.ApplyFormatting(idx, d.resolver.Formatting(theme.RoleBullets)); err != nil {
		return d.renderError("format", err)
	}
	return nil
}

func (d *Deck) renderError(stage string, err error) error {
	return &domain.RenderError{SlideNumber: d.count + 1, Stage: stage, Err: err}
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Save はデッキを書き出します。成功後の再呼び出しは domain.ErrDeckSaved を返します。
func (d *Deck) Save(ctx context.Context, path string) error {
	if d.saved {
		return domain.ErrDeckSaved
	}
	if err := ctx.Err(); err != nil {
		return &domain.PersistError{Path: path, Err: err}
	}

	var buf bytes.Buffer
	if err := d.doc.Encode(&buf); err != nil {
		return &domain.PersistError{Path: path, Err: err}
	}
	if err := d.writer.Write(ctx, path, &buf, d.doc.ContentType()); err != nil {
		return &domain.PersistError{Path: path, Err: err}
	}
	d.saved = true

	slog.InfoContext(ctx, "プレゼンテーションを保存しました", "path", path, "slides", d.count)
	return nil
}
