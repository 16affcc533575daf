package domain

import "strings"

// DefaultSubtitle は副題が得られなかった表紙に使う文言です。
const DefaultSubtitle = "A Comprehensive Overview"

// Outline は生成サービスが返すデッキ全体の構成案です。
type Outline struct {
	Title  string
	Slides []Slide
}

// First は先頭スライドを返します。スライドが無い場合は nil です。
func (o Outline) First() Slide {
	if len(o.Slides) == 0 {
		return nil
	}
	return o.Slides[0]
}

// SlideContent は本文スライドごとに生成される詳細コンテンツです。
type SlideContent struct {
	Title        string
	BulletPoints []BulletPoint
	Statistics   []string
	Conclusion   string
}

// ApplyTo は生成済みの詳細コンテンツをスライドに反映します。
// フィールドごとに明示的に上書きし、未知のフィールドは持ち込みません。
func (c SlideContent) ApplyTo(s Slide) Slide {
	body, ok := BodyOf(s)
	if !ok {
		return s
	}
	body.BulletPoints = c.BulletPoints
	body.HasBulletPoints = true
	body.Statistics = c.Statistics
	body.Conclusion = c.Conclusion

	s = WithBody(s, body)
	if t := strings.TrimSpace(c.Title); t != "" {
		s = WithTitle(s, t)
	}
	return s
}
