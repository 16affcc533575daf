package parser

import (
	"errors"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/domain"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnclosedObject は { が最後まで閉じていない応答を表します。
	ErrUnclosedObject = errors.New("JSON オブジェクトが閉じていません")
	// ErrInvalidJSON は切り出した部分が JSON として不正な応答を表します。
	ErrInvalidJSON = errors.New("JSON として不正です")
)

// DecodeOutline は生成サービスの生の応答からアウトラインを復元します。
// JSON として読めない場合は *domain.ParseError、構造が不足している場合は *domain.StructureError を返します。
func DecodeOutline(raw string) (*domain.Outline, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if reason, ok := checkOutline(doc); !ok {
		return nil, &domain.StructureError{Kind: "outline", Reason: reason}
	}

	outline := &domain.Outline{Title: doc.Get("title").String()}
	for _, item := range doc.Get("slides").Array() {
		outline.Slides = append(outline.Slides, buildSlide(item))
	}
	return outline, nil
}

// DecodeSlideContent は生成サービスの生の応答からスライドの詳細コンテンツを復元します。
func DecodeSlideContent(raw string) (*domain.SlideContent, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	if reason, ok := checkSlideContent(doc); !ok {
		return nil, &domain.StructureError{Kind: "slide_content", Reason: reason}
	}

	return &domain.SlideContent{
		Title:        doc.Get("title").String(),
		BulletPoints: bulletPoints(doc.Get("bullet_points")),
		Statistics:   stringList(doc.Get("statistics")),
		Conclusion:   doc.Get("conclusion").String(),
	}, nil
}

func decodeObject(raw string) (gjson.Result, error) {
	trimmed := strings.TrimSpace(raw)
	payload := ExtractObject(trimmed)
	if payload == "" && trimmed != "" {
		return gjson.Result{}, &domain.ParseError{Excerpt: truncateString(raw, excerptLen), Err: ErrUnclosedObject}
	}
	if !gjson.Valid(payload) {
		return gjson.Result{}, &domain.ParseError{Excerpt: truncateString(raw, excerptLen), Err: ErrInvalidJSON}
	}
	return gjson.Parse(payload), nil
}

// buildSlide は検証済みの1エントリから対応するスライド型を組み立てます。
func buildSlide(item gjson.Result) domain.Slide {
	header := domain.Header{
		Number: int(item.Get("slide_number").Int()),
		Title:  item.Get("title").String(),
		Type:   item.Get("type").String(),
	}
	body := buildBody(item)

	kind, _ := domain.ParseKind(header.Type)
	switch kind {
	case domain.KindTitle:
		return domain.TitleSlide{Header: header, Subtitle: item.Get("subtitle").String(), Body: body}
	case domain.KindSectionHeader:
		return domain.SectionHeaderSlide{Header: header}
	case domain.KindConclusion:
		return domain.ConclusionSlide{Header: header, Body: body}
	default:
		return domain.ContentSlide{Header: header, Body: body}
	}
}

func buildBody(item gjson.Result) domain.Body {
	body := domain.Body{
		KeyPoints:  stringList(item.Get("key_points")),
		Statistics: stringList(item.Get("statistics")),
		Conclusion: item.Get("conclusion").String(),
	}

	if bp := item.Get("bullet_points"); bp.Exists() {
		body.HasBulletPoints = true
		body.BulletPoints = bulletPoints(bp)
	}

	content := item.Get("content")
	switch {
	case content.IsObject():
		body.Content = &domain.ContentBlock{
			KeyPoints:      stringList(content.Get("key_points")),
			Themes:         stringList(content.Get("themes")),
			SupportingData: stringList(content.Get("supporting_data")),
			Subtitle:       content.Get("subtitle").String(),
		}
	case content.Type == gjson.String:
		body.Text = content.Str
	}
	return body
}

// bulletPoints は文字列とオブジェクトのみを受け付け、それ以外の形は捨てます。
func bulletPoints(r gjson.Result) []domain.BulletPoint {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]domain.BulletPoint, 0, len(items))
	for _, it := range items {
		switch {
		case it.Type == gjson.String:
			out = append(out, domain.PlainBullet(it.Str))
		case it.IsObject():
			out = append(out, domain.StructuredBullet(it.Get("point").String(), it.Get("details").String()))
		}
	}
	return out
}

// stringList は配列の各要素を文字列化します。配列でなければ nil です。
func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	items := r.Array()
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.String())
	}
	return out
}
