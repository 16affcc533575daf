// Package memory はスライドの内容をメモリ上に記録するだけのバックエンドです。
// 組み立て結果を検証するテストで使います。
package memory

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// Placeholder は1つのプレースホルダーに書かれた内容です。
type Placeholder struct {
	Text       string            `json:"text,omitempty"`
	Paragraphs []string          `json:"paragraphs,omitempty"`
	Format     *theme.Formatting `json:"format,omitempty"`
}

// Slide は記録されたスライドです。
type Slide struct {
	LayoutID     int                  `json:"layout_id"`
	Placeholders map[int]*Placeholder `json:"placeholders"`
}

// Document はスライドを順に保持します。
type Document struct {
	Slides []*Slide

	// FailCreate と FailFormat が設定されていると、対応する操作がそのエラーを返します。
	FailCreate error
	FailFormat error
}

// New は空の文書を作成します。
func New() *Document {
	return &Document{}
}

func (d *Document) CreateSlide(layoutID int) (backend.Slide, error) {
	if d.FailCreate != nil {
		return nil, d.FailCreate
	}
	if err := backend.CheckLayout(layoutID); err != nil {
		return nil, err
	}
	s := &Slide{LayoutID: layoutID, Placeholders: make(map[int]*Placeholder)}
	d.Slides = append(d.Slides, s)
	return &slideHandle{doc: d, slide: s}, nil
}

func (d *Document) ContentType() string { return "application/json" }

func (d *Document) Extension() string { return ".json" }

// Encode は記録内容を JSON で書き出します。
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Slides); err != nil {
		return fmt.Errorf("スライド記録の書き出しに失敗しました: %w", err)
	}
	return nil
}

// Placeholder はスライドの idx 番目の内容を返します。書かれていなければ nil です。
func (s *Slide) Placeholder(idx int) *Placeholder {
	return s.Placeholders[idx]
}

type slideHandle struct {
	doc   *Document
	slide *Slide
}

func (h *slideHandle) placeholder(idx int) (*Placeholder, error) {
	if !backend.HasPlaceholder(h.slide.LayoutID, idx) {
		return nil, &backend.PlaceholderError{LayoutID: h.slide.LayoutID, Idx: idx, Err: backend.ErrNoSuchPlaceholder}
	}
	p, ok := h.slide.Placeholders[idx]
	if !ok {
		p = &Placeholder{}
		h.slide.Placeholders[idx] = p
	}
	return p, nil
}

func (h *slideHandle) SetText(idx int, text string) error {
	p, err := h.placeholder(idx)
	if err != nil {
		return err
	}
	p.Text = text
	p.Paragraphs = nil
	return nil
}

func (h *slideHandle) SetParagraphs(idx int, paragraphs []string) error {
	p, err := h.placeholder(idx)
	if err != nil {
		return err
	}
	p.Text = ""
	p.Paragraphs = append([]string(nil), paragraphs...)
	return nil
}

func (h *slideHandle) ApplyFormatting(idx int, f theme.Formatting) error {
	if h.doc.FailFormat != nil {
		return h.doc.FailFormat
	}
	p, err := h.placeholder(idx)
	if err != nil {
		return err
	}
	p.Format = &f
	return nil
}
