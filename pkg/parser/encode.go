package parser

import (
	"encoding/json"

	"github.com/shouni/go-slide-kit/pkg/domain"
)

type wireOutline struct {
	Title  string      `json:"title"`
	Slides []wireSlide `json:"slides"`
}

type wireSlide struct {
	SlideNumber  int          `json:"slide_number"`
	Title        string       `json:"title"`
	Type         string       `json:"type"`
	Subtitle     string       `json:"subtitle,omitempty"`
	KeyPoints    []string     `json:"key_points,omitempty"`
	BulletPoints []wireBullet `json:"bullet_points,omitempty"`
	Content      any          `json:"content,omitempty"`
	Statistics   []string     `json:"statistics,omitempty"`
	Conclusion   string       `json:"conclusion,omitempty"`
}

type wireBullet struct {
	Point   string `json:"point"`
	Details string `json:"details,omitempty"`
}

type wireContent struct {
	KeyPoints      []string `json:"key_points,omitempty"`
	Themes         []string `json:"themes,omitempty"`
	SupportingData []string `json:"supporting_data,omitempty"`
	Subtitle       string   `json:"subtitle,omitempty"`
}

// EncodeOutline はアウトラインを生成サービスと同じ JSON 形式に書き戻します。
// DecodeOutline で読み直せる形を保ちます。
func EncodeOutline(o domain.Outline) ([]byte, error) {
	w := wireOutline{Title: o.Title, Slides: make([]wireSlide, 0, len(o.Slides))}
	for _, s := range o.Slides {
		h := s.SlideHeader()
		ws := wireSlide{SlideNumber: h.Number, Title: h.Title, Type: h.Type}
		if ws.Type == "" {
			ws.Type = string(s.Kind())
		}
		if ts, ok := s.(domain.TitleSlide); ok {
			ws.Subtitle = ts.Subtitle
		}
		if body, ok := domain.BodyOf(s); ok {
			fillBody(&ws, body)
		}
		w.Slides = append(w.Slides, ws)
	}
	return json.MarshalIndent(w, "", "  ")
}

func fillBody(ws *wireSlide, b domain.Body) {
	ws.KeyPoints = b.KeyPoints
	ws.Statistics = b.Statistics
	ws.Conclusion = b.Conclusion
	for _, bp := range b.BulletPoints {
		if bp.Structured {
			ws.BulletPoints = append(ws.BulletPoints, wireBullet{Point: bp.Point, Details: bp.Details})
			continue
		}
		ws.BulletPoints = append(ws.BulletPoints, wireBullet{Point: bp.Point})
	}
	switch {
	case b.Content != nil:
		ws.Content = wireContent{
			KeyPoints:      b.Content.KeyPoints,
			Themes:         b.Content.Themes,
			SupportingData: b.Content.SupportingData,
			Subtitle:       b.Content.Subtitle,
		}
	case b.Text != "":
		ws.Content = b.Text
	}
}
