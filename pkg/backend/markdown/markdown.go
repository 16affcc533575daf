// Package markdown はスライドを区切り線で分けた Markdown に書き出すバックエンドです。
package markdown

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

const (
	titleLayoutID = 0
	titleIdx      = 0
	separator     = "---"
)

type placeholder struct {
	text    string
	bullets []string
	bold    bool
}

type slide struct {
	layoutID     int
	placeholders map[int]*placeholder
}

// Document は Markdown 文書です。
type Document struct {
	slides []*slide
}

// New は空の Markdown 文書を作成します。
func New() *Document {
	return &Document{}
}

func (d *Document) CreateSlide(layoutID int) (backend.Slide, error) {
	if err := backend.CheckLayout(layoutID); err != nil {
		return nil, err
	}
	s := &slide{layoutID: layoutID, placeholders: make(map[int]*placeholder)}
	d.slides = append(d.slides, s)
	return s, nil
}

func (d *Document) ContentType() string { return "text/markdown; charset=utf-8" }

func (d *Document) Extension() string { return ".md" }

// Encode はスライドごとに見出しと本文を書き出します。
// タイトルレイアウトのタイトルは H1、それ以外は H2 です。
func (d *Document) Encode(w io.Writer) error {
	var sb strings.Builder
	for i, s := range d.slides {
		if i > 0 {
			sb.WriteString("\n" + separator + "\n\n")
		}
		s.write(&sb)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("markdownの書き込みに失敗しました: %w", err)
	}
	return nil
}

func (s *slide) write(sb *strings.Builder) {
	indexes := make([]int, 0, len(s.placeholders))
	for idx := range s.placeholders {
		indexes = append(indexes, idx)
	}
	slices.Sort(indexes)

	for _, idx := range indexes {
		p := s.placeholders[idx]
		if idx == titleIdx {
			heading := "## "
			if s.layoutID == titleLayoutID {
				heading = "# "
			}
			sb.WriteString(fmt.Sprintf("%s%s\n\n", heading, singleLine(p.text)))
			continue
		}
		if len(p.bullets) > 0 {
			for _, b := range p.bullets {
				sb.WriteString(fmt.Sprintf("- %s\n", singleLine(b)))
			}
			sb.WriteString("\n")
			continue
		}
		if text := strings.TrimSpace(p.text); text != "" {
			if p.bold {
				text = "**" + text + "**"
			}
			sb.WriteString(text + "\n\n")
		}
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (s *slide) placeholder(idx int) (*placeholder, error) {
	if !backend.HasPlaceholder(s.layoutID, idx) {
		return nil, &backend.PlaceholderError{LayoutID: s.layoutID, Idx: idx, Err: backend.ErrNoSuchPlaceholder}
	}
	p, ok := s.placeholders[idx]
	if !ok {
		p = &placeholder{}
		s.placeholders[idx] = p
	}
	return p, nil
}

func (s *slide) SetText(idx int, text string) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.text, p.bullets = text, nil
	return nil
}

func (s *slide) SetParagraphs(idx int, paragraphs []string) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.text, p.bullets = "", append([]string(nil), paragraphs...)
	return nil
}

// ApplyFormatting は Markdown で表せる太字だけを反映します。見出しは常に太字扱いです。
func (s *slide) ApplyFormatting(idx int, f theme.Formatting) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.bold = f.Bold
	return nil
}
