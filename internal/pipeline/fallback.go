package pipeline

import (
	"fmt"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/search"
)

const (
	fallbackSubtitle = "Generated Presentation"
	fallbackText     = "Content from search results"
)

// FallbackOutline は構成案の生成に失敗したときの代替デッキを組み立てるのだ。
// 表紙1枚と、検索結果の抜粋から作った本文スライドを最大 slides-1 枚並べるのだ。
func FallbackOutline(topic string, results []search.Result, slides int) domain.Outline {
	out := domain.Outline{
		Title: topic,
		Slides: []domain.Slide{
			domain.TitleSlide{
				Header:   domain.Header{Number: 1, Title: topic, Type: string(domain.KindTitle)},
				Subtitle: fallbackSubtitle,
			},
		},
	}

	n := min(len(results), max(slides-1, 0))
	for i, res := range results[:n] {
		title := strings.TrimSpace(res.Title)
		if title == "" {
			title = fmt.Sprintf("Topic %d", i+1)
		}
		text := strings.TrimSpace(res.Snippet)
		if text == "" {
			text = fallbackText
		}
		out.Slides = append(out.Slides, domain.ContentSlide{
			Header: domain.Header{Number: i + 2, Title: title, Type: string(domain.KindContent)},
			Body:   domain.Body{Text: text},
		})
	}
	return out
}
