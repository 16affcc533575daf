package theme

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileTheme は YAML のテーマ定義です。省略した項目は base のテーマから引き継ぎます。
type fileTheme struct {
	Name    string                 `yaml:"name"`
	Base    string                 `yaml:"base"`
	Colors  fileColors             `yaml:"colors"`
	Fonts   fileFonts              `yaml:"fonts"`
	Layouts map[string]SlideLayout `yaml:"layouts"`
}

type fileColors struct {
	Primary    *RGB `yaml:"primary"`
	Secondary  *RGB `yaml:"secondary"`
	Accent     *RGB `yaml:"accent"`
	TextDark   *RGB `yaml:"text_dark"`
	TextLight  *RGB `yaml:"text_light"`
	Background *RGB `yaml:"background"`
}

type fileFonts struct {
	TitleFont    *string `yaml:"title_font"`
	BodyFont     *string `yaml:"body_font"`
	TitleSize    *int    `yaml:"title_size"`
	SubtitleSize *int    `yaml:"subtitle_size"`
	BodySize     *int    `yaml:"body_size"`
	BulletSize   *int    `yaml:"bullet_size"`
}

// LoadFile は YAML ファイルからテーマを読み込み、検証済みのものを返します。
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("テーマファイルの読み込みに失敗しました: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("テーマファイル %s: %w", path, err)
	}
	return t, nil
}

// Parse は YAML のテーマ定義を解釈します。
// layouts に書いたエントリは同名の既定レイアウトを丸ごと置き換えます。
func Parse(data []byte) (*Theme, error) {
	var ft fileTheme
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ft); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("YAML の解析に失敗しました: %w", err)
	}

	baseName := ft.Base
	if baseName == "" {
		baseName = "modern"
	}
	base, err := Get(baseName)
	if err != nil {
		return nil, err
	}

	t := base.Clone()
	if ft.Name != "" {
		t.Name = ft.Name
	}
	ft.Colors.overlay(&t.Colors)
	ft.Fonts.overlay(&t.Fonts)
	for name, l := range ft.Layouts {
		t.Layouts[name] = l
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Marshal はテーマを Parse で読み戻せる YAML に書き出します。
func Marshal(t *Theme) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return nil, fmt.Errorf("テーマの書き出しに失敗しました: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f fileColors) overlay(c *Colors) {
	set := func(dst *RGB, src *RGB) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Primary, f.Primary)
	set(&c.Secondary, f.Secondary)
	set(&c.Accent, f.Accent)
	set(&c.TextDark, f.TextDark)
	set(&c.TextLight, f.TextLight)
	set(&c.Background, f.Background)
}

func (f fileFonts) overlay(fo *Fonts) {
	if f.TitleFont != nil {
		fo.TitleFont = *f.TitleFont
	}
	if f.BodyFont != nil {
		fo.BodyFont = *f.BodyFont
	}
	if f.TitleSize != nil {
		fo.TitleSize = *f.TitleSize
	}
	if f.SubtitleSize != nil {
		fo.SubtitleSize = *f.SubtitleSize
	}
	if f.BodySize != nil {
		fo.BodySize = *f.BodySize
	}
	if f.BulletSize != nil {
		fo.BulletSize = *f.BulletSize
	}
}
