package publisher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/domain"
)

// Build はアウトラインの全スライドを順に描画します。
// 表紙は必ず1枚目に1枚だけ置かれます。先頭が表紙でなければアウトラインのタイトルから作ります。
func (d *Deck) Build(ctx context.Context, outline domain.Outline) error {
	rest := outline.Slides
	cover := domain.TitleSlide{
		Header:   domain.Header{Number: 1, Title: outline.Title, Type: string(domain.KindTitle)},
		Subtitle: domain.DefaultSubtitle,
	}
	if first, ok := outline.First().(domain.TitleSlide); ok {
		cover = first
		if cover.Title == "" {
			cover.Title = outline.Title
		}
		if subtitleOf(cover) == "" {
			cover.Subtitle = domain.DefaultSubtitle
		}
		rest = rest[1:]
	}

	if err := d.AddSlide(ctx, cover); err != nil {
		return fmt.Errorf("表紙の描画に失敗しました: %w", err)
	}

	for _, s := range rest {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := s.(domain.TitleSlide); ok {
			slog.DebugContext(ctx, "重複した表紙をスキップします", "slide_number", s.SlideHeader().Number, "title", s.SlideHeader().Title)
			continue
		}
		if err := d.AddSlide(ctx, s); err != nil {
			return fmt.Errorf("スライド %d の描画に失敗しました: %w", s.SlideHeader().Number, err)
		}
	}

	slog.InfoContext(ctx, "デッキを組み立てました", "title", outline.Title, "slides", d.count)
	return nil
}
