// Package pdf はスライドを1ページずつ PDF に描画するバックエンドです。
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/shouni/go-slide-kit/pkg/backend"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// 4:3 のスライドと同じ大きさ（インチ）です。
const (
	pageWidth    = 10.0
	pageHeight   = 7.5
	sideMargin   = 0.5
	lineSpacing  = 1.2
	minFontSize  = 8
	defaultSize  = 18
	bulletPrefix = "• "
	accentHeight = 0.06
)

type region struct {
	x, y, w, h float64
}

type placeholder struct {
	paragraphs []string
	bullets    bool
	format     *theme.Formatting
}

type slide struct {
	layoutID     int
	placeholders map[int]*placeholder
}

// Document は PDF 文書です。描画は Encode でまとめて行います。
type Document struct {
	theme  *theme.Theme
	slides []*slide
}

// New はテーマの背景色とアクセント色を使う PDF 文書を作成します。
func New(t *theme.Theme) *Document {
	return &Document{theme: t}
}

func (d *Document) CreateSlide(layoutID int) (backend.Slide, error) {
	if err := backend.CheckLayout(layoutID); err != nil {
		return nil, err
	}
	s := &slide{layoutID: layoutID, placeholders: make(map[int]*placeholder)}
	d.slides = append(d.slides, s)
	return s, nil
}

func (d *Document) ContentType() string { return "application/pdf" }

func (d *Document) Extension() string { return ".pdf" }

// Encode は全スライドを描画して w に書き出します。
func (d *Document) Encode(w io.Writer) error {
	pdf := newPDF()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, s := range d.slides {
		pdf.AddPage()
		d.paintBackground(pdf)
		for _, idx := range backend.Placeholders[s.layoutID] {
			p, ok := s.placeholders[idx]
			if !ok || len(p.paragraphs) == 0 {
				continue
			}
			drawPlaceholder(pdf, tr, regionFor(s.layoutID, idx), p)
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("PDFの描画に失敗しました: %w", err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("PDFの書き出しに失敗しました: %w", err)
	}
	return nil
}

// newPDF は自動改ページを切ったスライド大のページ設定を返します。
func newPDF() *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "in",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return pdf
}

func (d *Document) paintBackground(pdf *gofpdf.Fpdf) {
	if d.theme == nil {
		return
	}
	bg := d.theme.Colors.Background
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	accent := d.theme.Colors.Primary
	pdf.SetFillColor(int(accent.R), int(accent.G), int(accent.B))
	pdf.Rect(0, pageHeight-accentHeight, pageWidth, accentHeight, "F")
}

// regionFor はレイアウトとプレースホルダー番号から描画領域を決めます。
func regionFor(layoutID, idx int) region {
	full := pageWidth - 2*sideMargin
	half := (full - sideMargin) / 2
	right := sideMargin + half + sideMargin

	switch layoutID {
	case 0:
		if idx == 0 {
			return region{sideMargin, 2.3, full, 1.6}
		}
		return region{sideMargin, 4.1, full, 1.4}
	case 2:
		if idx == 0 {
			return region{sideMargin, 2.8, full, 1.4}
		}
		return region{sideMargin, 4.4, full, 1.0}
	case 3:
		switch idx {
		case 0:
			return region{sideMargin, 0.4, full, 1.2}
		case 1:
			return region{sideMargin, 1.8, half, 5.0}
		default:
			return region{right, 1.8, half, 5.0}
		}
	case 4:
		switch idx {
		case 0:
			return region{sideMargin, 0.4, full, 1.2}
		case 1:
			return region{sideMargin, 1.7, half, 0.6}
		case 2:
			return region{sideMargin, 2.4, half, 4.4}
		case 3:
			return region{right, 1.7, half, 0.6}
		default:
			return region{right, 2.4, half, 4.4}
		}
	default:
		if idx == 0 {
			return region{sideMargin, 0.4, full, 1.2}
		}
		return region{sideMargin, 1.8, full, 5.0}
	}
}

func drawPlaceholder(pdf *gofpdf.Fpdf, tr func(string) string, r region, p *placeholder) {
	f := theme.Formatting{Size: defaultSize}
	if p.format != nil {
		f = *p.format
	}
	if f.Margins != nil {
		r.x += f.Margins.Left
		r.w -= f.Margins.Left + f.Margins.Right
		r.y += f.Margins.Top
		r.h -= f.Margins.Top + f.Margins.Bottom
	}

	lines := make([]string, 0, len(p.paragraphs))
	for _, para := range p.paragraphs {
		if p.bullets {
			para = bulletPrefix + para
		}
		lines = append(lines, tr(para))
	}

	style := ""
	if f.Bold {
		style = "B"
	}
	family := coreFont(f.Font)
	size := f.Size
	if size <= 0 {
		size = defaultSize
	}
	if f.AutoFit == theme.AutoFitShrink {
		size = fitSize(pdf, family, style, size, r, lines, f.Spacing)
	}

	pdf.SetFont(family, style, float64(size))
	pdf.SetTextColor(int(f.Color.R), int(f.Color.G), int(f.Color.B))

	lineHt := lineHeight(size)
	y := r.y
	for _, line := range lines {
		if f.Spacing != nil {
			y += f.Spacing.Before / 72
		}
		pdf.SetXY(r.x, y)
		pdf.MultiCell(r.w, lineHt, line, "", alignStr(f.Align), false)
		y = pdf.GetY()
		if f.Spacing != nil {
			y += f.Spacing.After / 72
		}
	}
}

// fitSize は枠に収まるまでフォントを小さくします。
func fitSize(pdf *gofpdf.Fpdf, family, style string, size int, r region, lines []string, sp *theme.Spacing) int {
	for ; size > minFontSize; size-- {
		pdf.SetFont(family, style, float64(size))
		if textHeight(pdf, size, r.w, lines, sp) <= r.h {
			return size
		}
	}
	return minFontSize
}

func textHeight(pdf *gofpdf.Fpdf, size int, width float64, lines []string, sp *theme.Spacing) float64 {
	var total float64
	for _, line := range lines {
		n := len(pdf.SplitLines([]byte(line), width))
		if n == 0 {
			n = 1
		}
		total += float64(n) * lineHeight(size)
		if sp != nil {
			total += (sp.Before + sp.After) / 72
		}
	}
	return total
}

func lineHeight(size int) float64 {
	return float64(size) / 72 * lineSpacing
}

func alignStr(a theme.Alignment) string {
	switch a {
	case theme.AlignCenter:
		return "C"
	case theme.AlignRight:
		return "R"
	default:
		return "L"
	}
}

// coreFont はテーマのフォント名を PDF の標準フォントに寄せます。
func coreFont(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "times"), strings.Contains(n, "serif") && !strings.Contains(n, "sans"):
		return "Times"
	case strings.Contains(n, "courier"), strings.Contains(n, "mono"):
		return "Courier"
	default:
		return "Helvetica"
	}
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
	p.paragraphs = []string{text}
	p.bullets = false
	return nil
}

func (s *slide) SetParagraphs(idx int, paragraphs []string) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.paragraphs = append([]string(nil), paragraphs...)
	p.bullets = true
	return nil
}

func (s *slide) ApplyFormatting(idx int, f theme.Formatting) error {
	p, err := s.placeholder(idx)
	if err != nil {
		return err
	}
	p.format = &f
	return nil
}
