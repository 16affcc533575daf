package pptx

import (
	"archive/zip"
	"embed"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/shouni/go-slide-kit/pkg/theme"
)

//go:embed templates/*.xml
var templateFS embed.FS

var parts = template.Must(template.New("pptx").Funcs(template.FuncMap{"esc": escape}).ParseFS(templateFS, "templates/*.xml"))

const firstSlideRel = 5

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

type paraView struct {
	PPrAttrs string
	Spacing  bool
	Before   int
	After    int
	Text     string
	RPrAttrs string
	Color    string
	Font     string
}

type shapeView struct {
	placeholderDef
	BodyAttrs  string
	Shrink     bool
	Paragraphs []paraView
}

type slideView struct {
	Number       int
	SlideID      int
	RelID        string
	LayoutNumber int
	Shapes       []shapeView
}

type packageView struct {
	Title    string
	Creator  string
	Created  string
	Width    int
	Height   int
	Layouts  []layoutDef
	Slides   []slideView
	ThemeRel int

	Name       string
	Primary    string
	Secondary  string
	Accent     string
	TextDark   string
	TextLight  string
	Background string
	TitleFont  string
	BodyFont   string
	TitleSize  int
	BodySize   int
	BulletSize int
}

type part struct {
	name     string
	template string
	data     any
}

// Encode はパッケージ全体を zip として w に書き出します。
func (d *Document) Encode(w io.Writer) error {
	view := d.packageView()

	list := []part{
		{"[Content_Types].xml", "content_types.xml", view},
		{"_rels/.rels", "root.rels.xml", view},
		{"docProps/core.xml", "core.xml", view},
		{"docProps/app.xml", "app.xml", view},
		{"ppt/presentation.xml", "presentation.xml", view},
		{"ppt/_rels/presentation.xml.rels", "presentation.rels.xml", view},
		{"ppt/presProps.xml", "pres_props.xml", view},
		{"ppt/tableStyles.xml", "table_styles.xml", view},
		{"ppt/theme/theme1.xml", "theme.xml", view},
		{"ppt/slideMasters/slideMaster1.xml", "slide_master.xml", view},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", "slide_master.rels.xml", view},
	}
	for _, l := range view.Layouts {
		list = append(list,
			part{fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", l.Number()), "slide_layout.xml", l},
			part{fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", l.Number()), "slide_layout.rels.xml", l},
		)
	}
	for _, s := range view.Slides {
		list = append(list,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", s.Number), "slide.xml", s},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", s.Number), "slide.rels.xml", s},
		)
	}

	zw := zip.NewWriter(w)
	for _, p := range list {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("%s の作成に失敗しました: %w", p.name, err)
		}
		if err := parts.ExecuteTemplate(fw, p.template, p.data); err != nil {
			return fmt.Errorf("%s の書き出しに失敗しました: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pptx パッケージの書き出しに失敗しました: %w", err)
	}
	return nil
}

func (d *Document) packageView() packageView {
	c := d.theme.Colors
	f := d.theme.Fonts
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	creator := d.Creator
	if creator == "" {
		creator = defaultCreator
	}

	v := packageView{
		Title:    d.title(),
		Creator:  creator,
		Created:  now().UTC().Format("2006-01-02T15:04:05Z"),
		Width:    slideWidth,
		Height:   slideHeight,
		Layouts:  layouts,
		ThemeRel: len(layouts) + 1,

		Name:       d.theme.Name,
		Primary:    c.Primary.Hex(),
		Secondary:  c.Secondary.Hex(),
		Accent:     c.Accent.Hex(),
		TextDark:   c.TextDark.Hex(),
		TextLight:  c.TextLight.Hex(),
		Background: c.Background.Hex(),
		TitleFont:  f.TitleFont,
		BodyFont:   f.BodyFont,
		TitleSize:  f.TitleSize * 100,
		BodySize:   f.BodySize * 100,
		BulletSize: f.BulletSize * 100,
	}
	for i, s := range d.slides {
		v.Slides = append(v.Slides, slideView{
			Number:       i + 1,
			SlideID:      256 + i,
			RelID:        fmt.Sprintf("rId%d", firstSlideRel+i),
			LayoutNumber: s.layout.Number(),
			Shapes:       s.shapes(),
		})
	}
	return v
}

// title は先頭スライドのタイトルを文書名にします。
func (d *Document) title() string {
	if len(d.slides) > 0 {
		if p, ok := d.slides[0].placeholders[0]; ok {
			return strings.Join(p.paragraphs, " ")
		}
	}
	return d.theme.Name
}

// shapes はレイアウト順に、書き込みのあったプレースホルダーだけを並べます。
func (s *slide) shapes() []shapeView {
	var out []shapeView
	for _, def := range s.layout.Shapes {
		p, ok := s.placeholders[def.Idx]
		if !ok {
			continue
		}
		out = append(out, p.view())
	}
	return out
}

func (p *placeholder) view() shapeView {
	v := shapeView{placeholderDef: p.def}

	var pPr, rPr strings.Builder
	var color, font string
	spacing := false
	var before, after int

	if f := p.format; f != nil {
		var body strings.Builder
		if f.WordWrap {
			body.WriteString(` wrap="square"`)
		}
		if m := f.Margins; m != nil {
			fmt.Fprintf(&body, ` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`,
				inchesToEMU(m.Left), inchesToEMU(m.Top), inchesToEMU(m.Right), inchesToEMU(m.Bottom))
		}
		v.BodyAttrs = body.String()
		v.Shrink = f.AutoFit == theme.AutoFitShrink

		if algn := alignAttr(f.Align); algn != "" {
			fmt.Fprintf(&pPr, ` algn="%s"`, algn)
		}
		if f.Level > 0 {
			fmt.Fprintf(&pPr, ` lvl="%d"`, f.Level)
		}
		if f.Spacing != nil {
			spacing = true
			before = int(math.Round(f.Spacing.Before * 100))
			after = int(math.Round(f.Spacing.After * 100))
		}
		if f.Size > 0 {
			fmt.Fprintf(&rPr, ` sz="%d"`, f.Size*100)
		}
		if f.Bold {
			rPr.WriteString(` b="1"`)
		}
		color = f.Color.Hex()
		font = f.Font
	}

	paragraphs := p.paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []string{""}
	}
	for _, text := range paragraphs {
		v.Paragraphs = append(v.Paragraphs, paraView{
			PPrAttrs: pPr.String(),
			Spacing:  spacing,
			Before:   before,
			After:    after,
			Text:     text,
			RPrAttrs: rPr.String(),
			Color:    color,
			Font:     font,
		})
	}
	return v
}

func inchesToEMU(in float64) int64 {
	return int64(math.Round(in * emuPerInch))
}

func alignAttr(a theme.Alignment) string {
	switch a {
	case theme.AlignLeft:
		return "l"
	case theme.AlignCenter:
		return "ctr"
	case theme.AlignRight:
		return "r"
	default:
		return ""
	}
}
