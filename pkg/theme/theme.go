package theme

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NoPlaceholder はレイアウトにその役割のプレースホルダーが無いことを表します。
const NoPlaceholder = -1

// 既定のレイアウト名です。
const (
	LayoutTitle         = "title"
	LayoutContent       = "content"
	LayoutSectionHeader = "section_header"
	LayoutTwoContent    = "two_content"
	LayoutComparison    = "comparison"
	LayoutBlank         = "blank"
)

// SlideLayout はレイアウト名とバックエンドのレイアウト番号、プレースホルダー番号の対応です。
type SlideLayout struct {
	LayoutID              int    `yaml:"layout_id" validate:"min=0"`
	Name                  string `yaml:"name"`
	TitlePlaceholderIdx   int    `yaml:"title_placeholder_idx" validate:"min=-1"`
	ContentPlaceholderIdx int    `yaml:"content_placeholder_idx" validate:"min=-1"`
}

// HasTitle はタイトル用プレースホルダーがあるかを返します。
func (l SlideLayout) HasTitle() bool { return l.TitlePlaceholderIdx != NoPlaceholder }

// HasContent は本文用プレースホルダーがあるかを返します。
func (l SlideLayout) HasContent() bool { return l.ContentPlaceholderIdx != NoPlaceholder }

// Colors はテーマの配色です。
type Colors struct {
	Primary    RGB `yaml:"primary"`
	Secondary  RGB `yaml:"secondary"`
	Accent     RGB `yaml:"accent"`
	TextDark   RGB `yaml:"text_dark"`
	TextLight  RGB `yaml:"text_light"`
	Background RGB `yaml:"background"`
}

// Get は役割名から色を引きます。未知の名前は Primary になります。
func (c Colors) Get(name string) RGB {
	switch name {
	case "secondary":
		return c.Secondary
	case "accent":
		return c.Accent
	case "text_dark":
		return c.TextDark
	case "text_light":
		return c.TextLight
	case "background":
		return c.Background
	default:
		return c.Primary
	}
}

// Fonts はテーマのフォント設定です。サイズはポイント単位です。
type Fonts struct {
	TitleFont    string `yaml:"title_font" validate:"required"`
	BodyFont     string `yaml:"body_font" validate:"required"`
	TitleSize    int    `yaml:"title_size" validate:"gt=0"`
	SubtitleSize int    `yaml:"subtitle_size" validate:"gt=0"`
	BodySize     int    `yaml:"body_size" validate:"gt=0"`
	BulletSize   int    `yaml:"bullet_size" validate:"gt=0"`
}

// Theme はデッキ全体の見た目を決めるデータです。
type Theme struct {
	Name    string                 `yaml:"name" validate:"required"`
	Colors  Colors                 `yaml:"colors"`
	Fonts   Fonts                  `yaml:"fonts"`
	Layouts map[string]SlideLayout `yaml:"layouts" validate:"required,dive"`
}

// Layout は名前に対応するレイアウトを返します。
func (t *Theme) Layout(name string) (SlideLayout, bool) {
	l, ok := t.Layouts[name]
	return l, ok
}

// LayoutNames は定義済みのレイアウト名を昇順で返します。
func (t *Theme) LayoutNames() []string {
	return slices.Sorted(maps.Keys(t.Layouts))
}

var validate = validator.New()

// Validate はテーマの値が描画に使える範囲にあるかを検証します。
// content レイアウトは代替先として必ず必要です。
func (t *Theme) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("テーマ %q の検証に失敗しました: %w", t.Name, err)
	}
	if _, ok := t.Layouts[LayoutContent]; !ok {
		return fmt.Errorf("テーマ %q に %s レイアウトがありません", t.Name, LayoutContent)
	}
	return nil
}

// Clone はレイアウト表を含めて複製します。
func (t *Theme) Clone() *Theme {
	c := *t
	c.Layouts = maps.Clone(t.Layouts)
	return &c
}

// DefaultLayouts はプレゼンテーション既定テンプレートのレイアウト番号に合わせた表です。
func DefaultLayouts() map[string]SlideLayout {
	return map[string]SlideLayout{
		LayoutTitle:         {LayoutID: 0, Name: "Title Slide", TitlePlaceholderIdx: 0, ContentPlaceholderIdx: 1},
		LayoutContent:       {LayoutID: 1, Name: "Content with Bullets", TitlePlaceholderIdx: 0, ContentPlaceholderIdx: 1},
		LayoutSectionHeader: {LayoutID: 2, Name: "Section Header", TitlePlaceholderIdx: 0, ContentPlaceholderIdx: NoPlaceholder},
		LayoutTwoContent:    {LayoutID: 3, Name: "Two Content", TitlePlaceholderIdx: 0, ContentPlaceholderIdx: 1},
		LayoutComparison:    {LayoutID: 4, Name: "Comparison", TitlePlaceholderIdx: 0, ContentPlaceholderIdx: 1},
		LayoutBlank:         {LayoutID: 6, Name: "Blank", TitlePlaceholderIdx: NoPlaceholder, ContentPlaceholderIdx: NoPlaceholder},
	}
}

func defaultColors() Colors {
	return Colors{
		Primary:    RGB{68, 114, 196},
		Secondary:  RGB{112, 173, 71},
		Accent:     RGB{255, 192, 0},
		TextDark:   RGB{68, 68, 68},
		TextLight:  RGB{255, 255, 255},
		Background: RGB{255, 255, 255},
	}
}

func defaultFonts() Fonts {
	return Fonts{
		TitleFont:    "Calibri",
		BodyFont:     "Calibri",
		TitleSize:    44,
		SubtitleSize: 32,
		BodySize:     18,
		BulletSize:   16,
	}
}

// Modern は青基調の既定テーマです。
func Modern() *Theme {
	return &Theme{Name: "Modern", Colors: defaultColors(), Fonts: defaultFonts(), Layouts: DefaultLayouts()}
}

// Corporate は落ち着いた配色のビジネス向けテーマです。
func Corporate() *Theme {
	colors := defaultColors()
	colors.Primary = RGB{54, 96, 146}
	colors.Secondary = RGB{149, 179, 215}
	colors.Accent = RGB{180, 198, 231}
	colors.TextDark = RGB{47, 47, 47}

	fonts := defaultFonts()
	fonts.TitleFont = "Segoe UI"
	fonts.BodyFont = "Segoe UI"

	return &Theme{Name: "Corporate", Colors: colors, Fonts: fonts, Layouts: DefaultLayouts()}
}

// Minimalist は白黒にアクセント色を一つ加えたテーマです。
func Minimalist() *Theme {
	colors := defaultColors()
	colors.Primary = RGB{0, 0, 0}
	colors.Secondary = RGB{128, 128, 128}
	colors.Accent = RGB{255, 87, 51}
	colors.TextDark = RGB{51, 51, 51}

	fonts := defaultFonts()
	fonts.TitleFont = "Arial"
	fonts.BodyFont = "Arial"
	fonts.TitleSize = 36
	fonts.SubtitleSize = 24
	fonts.BodySize = 16

	return &Theme{Name: "Minimalist", Colors: colors, Fonts: fonts, Layouts: DefaultLayouts()}
}

var builtins = map[string]func() *Theme{
	"modern":     Modern,
	"corporate":  Corporate,
	"minimalist": Minimalist,
}

// aliases は CLI で受け付ける別名です。
var aliases = map[string]string{
	"default": "modern",
	"dark":    "minimalist",
}

// Names は組み込みテーマ名を昇順で返します。
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// ChoiceNames は CLI の --theme で指定できる名前をすべて返します。
func ChoiceNames() []string {
	names := append(Names(), slices.Collect(maps.Keys(aliases))...)
	slices.Sort(names)
	return names
}

// Get は名前（大文字小文字は区別しない）から組み込みテーマを生成します。
func Get(name string) (*Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	ctor, ok := builtins[key]
	if !ok {
		return nil, fmt.Errorf("未知のテーマです: %s (利用可能: %s)", name, strings.Join(ChoiceNames(), ", "))
	}
	return ctor(), nil
}
