package domain

// SlideKind はアウトラインの type タグのうち、組み立て処理が専用のルーチンを持つ種類です。
type SlideKind string

const (
	KindTitle         SlideKind = "title"
	KindContent       SlideKind = "content"
	KindSectionHeader SlideKind = "section_header"
	KindConclusion    SlideKind = "conclusion"
)

// ParseKind は type タグを SlideKind に変換します。未知のタグは false を返します。
func ParseKind(tag string) (SlideKind, bool) {
	switch SlideKind(tag) {
	case KindTitle, KindContent, KindSectionHeader, KindConclusion:
		return SlideKind(tag), true
	default:
		return KindContent, false
	}
}

// Header は全スライド種別に共通する属性です。
type Header struct {
	Number int
	Title  string
	// Type は生成結果に書かれていた生の type タグです。
	// 未知のタグ（"timeline" など）もそのまま保持し、レイアウト解決に渡します。
	Type string
}

// Slide はアウトラインの1エントリを表す閉じた直和型です。
// 実装は TitleSlide / ContentSlide / SectionHeaderSlide / ConclusionSlide のみです。
type Slide interface {
	SlideHeader() Header
	Kind() SlideKind
	isSlide()
}

// TitleSlide はデッキの表紙です。
type TitleSlide struct {
	Header
	Subtitle string
	// Body は subtitle が空のときに content から副題を拾うためだけに保持します。
	Body Body
}

// ContentSlide は箇条書きを持つ本文スライドです。
// 未知の type タグもこの型に落とし込まれます。
type ContentSlide struct {
	Header
	Body Body
}

// SectionHeaderSlide はタイトルのみの区切りスライドです。
type SectionHeaderSlide struct {
	Header
}

// ConclusionSlide はまとめのスライドです。本文の描画は ContentSlide と同じです。
type ConclusionSlide struct {
	Header
	Body Body
}

func (s TitleSlide) SlideHeader() Header         { return s.Header }
func (s ContentSlide) SlideHeader() Header       { return s.Header }
func (s SectionHeaderSlide) SlideHeader() Header { return s.Header }
func (s ConclusionSlide) SlideHeader() Header    { return s.Header }

func (TitleSlide) Kind() SlideKind         { return KindTitle }
func (ContentSlide) Kind() SlideKind       { return KindContent }
func (SectionHeaderSlide) Kind() SlideKind { return KindSectionHeader }
func (ConclusionSlide) Kind() SlideKind    { return KindConclusion }

func (TitleSlide) isSlide()         {}
func (ContentSlide) isSlide()       {}
func (SectionHeaderSlide) isSlide() {}
func (ConclusionSlide) isSlide()    {}

// Recognized は生の type タグが既知の種類だったかを返します。
func (h Header) Recognized() bool {
	_, ok := ParseKind(h.Type)
	return ok
}

// Body はスライド本文の取りうる形をまとめたものです。
// どのフィールドを描画に使うかは director.ExtractBullets の優先順位で決まります。
type Body struct {
	// BulletPoints は bullet_points キーが存在した場合のみ HasBulletPoints が true になります。
	BulletPoints    []BulletPoint
	HasBulletPoints bool

	// Content は content がオブジェクトだった場合の構造化本文です。
	Content *ContentBlock
	// Text は content が文字列だった場合の本文です。
	Text string

	KeyPoints  []string
	Statistics []string
	Conclusion string
}

// ContentBlock は content オブジェクトの既知フィールドです。
type ContentBlock struct {
	KeyPoints      []string
	Themes         []string
	SupportingData []string
	Subtitle       string
}

// BodyOf はスライドが本文を持つ場合にそれを返します。
func BodyOf(s Slide) (Body, bool) {
	switch v := s.(type) {
	case TitleSlide:
		return v.Body, true
	case ContentSlide:
		return v.Body, true
	case ConclusionSlide:
		return v.Body, true
	case SectionHeaderSlide:
		return Body{}, false
	default:
		return Body{}, false
	}
}

// WithBody は本文を差し替えたスライドを返します。本文を持たない種別はそのまま返します。
func WithBody(s Slide, b Body) Slide {
	switch v := s.(type) {
	case TitleSlide:
		v.Body = b
		return v
	case ContentSlide:
		v.Body = b
		return v
	case ConclusionSlide:
		v.Body = b
		return v
	default:
		return s
	}
}

// WithTitle はタイトルを差し替えたスライドを返します。
func WithTitle(s Slide, title string) Slide {
	switch v := s.(type) {
	case TitleSlide:
		v.Title = title
		return v
	case ContentSlide:
		v.Title = title
		return v
	case SectionHeaderSlide:
		v.Title = title
		return v
	case ConclusionSlide:
		v.Title = title
		return v
	default:
		return s
	}
}
