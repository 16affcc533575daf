// Package pptx はスライドを PresentationML（.pptx）として書き出すバックエンドです。
// 既定テンプレートと同じ7種類のレイアウトを持つ最小構成のパッケージを生成します。
package pptx

import (
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

const defaultCreator = "go-slide-kit"

type placeholder struct {
	def        placeholderDef
	paragraphs []string
	format     *theme.Formatting
}

type slide struct {
	layout       layoutDef
	placeholders map[int]*placeholder
}

// Document は書き出し前のプレゼンテーションです。
type Document struct {
	theme  *theme.Theme
	slides []*slide

	// Creator は文書プロパティの作成者とアプリケーション名です。
	Creator string
	// Now は作成日時の取得に使います。
	Now func() time.Time
}

// New はテーマの配色とフォントをマスターに反映した文書を作成します。nil なら Modern です。
func New(t *theme.Theme) *Document {
	if t == nil {
		t = theme.Modern()
	}
	return &Document{theme: t, Creator: defaultCreator, Now: time.Now}
}

func (d *Document) CreateSlide(layoutID int) (backend.Slide, error) {
	l, ok := layoutByID(layoutID)
	if !ok {
		return nil, fmt.Errorf("layout %d: %w", layoutID, backend.ErrNoSuchLayout)
	}
	s := &slide{layout: l, placeholders: make(map[int]*placeholder)}
	d.slides = append(d.slides, s)
	return s, nil
}

func (d *Document) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
}

func (d *Document) Extension() string { return ".pptx" }

func (s *slide) placeholder(idx int) (*placeholder, error) {
	def, ok := s.layout.shape(idx)
	if !ok {
		return nil, &backend.PlaceholderError{LayoutID: s.layout.ID, Idx: idx, Err: backend.ErrNoSuchPlaceholder}
	}
	p, ok := s.placeholders[idx]
	if !ok {
		p = &placeholder{def: def}
		s.placeholders[idx] = p
	}
	return p, nil
}

// SetText は改行ごとに段落を分けて書き込みます。
func (s *slide) SetText(idx int, text string) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.paragraphs = strings.Split(text, "\n")
	return nil
}

func (s *slide) SetParagraphs(idx int, paragraphs []string) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.paragraphs = append([]string(nil), paragraphs...)
	return nil
}

// ApplyFormatting は書き込み済みの全段落に適用される書式を設定します。
func (s *slide) ApplyFormatting(idx int, f theme.Formatting) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.format = &f
	return nil
}
