package pptx

import (
	"fmt"
	"strings"
)

const (
	emuPerInch = 914400

	slideWidth  = 9144000
	slideHeight = 6858000

	masterID = 2147483648
)

// placeholderDef はレイアウト上のプレースホルダー1つの定義です。
type placeholderDef struct {
	Idx        int
	Type       string // ph@type。空なら本文兼用（obj）
	Size       string // ph@sz
	Name       string
	Prompt     string
	NoBullet   bool // 副題のように行頭記号を付けない枠
	X, Y, W, H int64
}

// PhXML はスライド・レイアウトで共通の <p:ph> 要素です。
func (p placeholderDef) PhXML() string {
	var sb strings.Builder
	sb.WriteString("<p:ph")
	if p.Type != "" {
		fmt.Fprintf(&sb, ` type="%s"`, p.Type)
	}
	if p.Size != "" {
		fmt.Fprintf(&sb, ` sz="%s"`, p.Size)
	}
	if p.Idx > 0 {
		fmt.Fprintf(&sb, ` idx="%d"`, p.Idx)
	}
	sb.WriteString("/>")
	return sb.String()
}

// ShapeID は spTree 内で一意な図形番号です。1 はグループ自身が使います。
func (p placeholderDef) ShapeID() int { return p.Idx + 2 }

type layoutDef struct {
	ID     int
	Type   string
	Name   string
	Shapes []placeholderDef
}

// Number は slideLayoutN.xml の N です。
func (l layoutDef) Number() int { return l.ID + 1 }

// MasterID はマスター内の sldLayoutId です。
func (l layoutDef) MasterID() int64 { return masterID + int64(l.Number()) }

func (l layoutDef) shape(idx int) (placeholderDef, bool) {
	for _, s := range l.Shapes {
		if s.Idx == idx {
			return s, true
		}
	}
	return placeholderDef{}, false
}

var titleShape = placeholderDef{Idx: 0, Type: "title", Name: "Title 1", Prompt: "Click to edit Master title style",
	X: 457200, Y: 274638, W: 8229600, H: 1143000}

var bodyShape = placeholderDef{Idx: 1, Name: "Content Placeholder 2", Prompt: "Click to edit Master text styles",
	X: 457200, Y: 1600200, W: 8229600, H: 4525963}

// layouts は既定テンプレートと同じ順序・番号のレイアウトです。
var layouts = []layoutDef{
	{ID: 0, Type: "title", Name: "Title Slide", Shapes: []placeholderDef{
		{Idx: 0, Type: "ctrTitle", Name: "Title 1", Prompt: "Click to edit Master title style",
			X: 685800, Y: 2130425, W: 7772400, H: 1470025},
		{Idx: 1, Type: "subTitle", Name: "Subtitle 2", Prompt: "Click to edit Master subtitle style", NoBullet: true,
			X: 1371600, Y: 3886200, W: 6400800, H: 1752600},
	}},
	{ID: 1, Type: "obj", Name: "Title and Content", Shapes: []placeholderDef{titleShape, bodyShape}},
	{ID: 2, Type: "secHead", Name: "Section Header", Shapes: []placeholderDef{
		{Idx: 0, Type: "title", Name: "Title 1", Prompt: "Click to edit Master title style",
			X: 722313, Y: 4406900, W: 7772400, H: 1362075},
		{Idx: 1, Type: "body", Name: "Text Placeholder 2", Prompt: "Click to edit Master text styles", NoBullet: true,
			X: 722313, Y: 2906713, W: 7772400, H: 1500187},
	}},
	{ID: 3, Type: "twoObj", Name: "Two Content", Shapes: []placeholderDef{
		titleShape,
		{Idx: 1, Size: "half", Name: "Content Placeholder 2", Prompt: "Click to edit Master text styles",
			X: 457200, Y: 1600200, W: 4038600, H: 4525963},
		{Idx: 2, Size: "half", Name: "Content Placeholder 3", Prompt: "Click to edit Master text styles",
			X: 4648200, Y: 1600200, W: 4038600, H: 4525963},
	}},
	{ID: 4, Type: "twoTxTwoObj", Name: "Comparison", Shapes: []placeholderDef{
		titleShape,
		{Idx: 1, Type: "body", Name: "Text Placeholder 2", Prompt: "Click to edit Master text styles", NoBullet: true,
			X: 457200, Y: 1535113, W: 4040188, H: 639762},
		{Idx: 2, Size: "half", Name: "Content Placeholder 3", Prompt: "Click to edit Master text styles",
			X: 457200, Y: 2174875, W: 4040188, H: 3951288},
		{Idx: 3, Type: "body", Size: "quarter", Name: "Text Placeholder 4", Prompt: "Click to edit Master text styles", NoBullet: true,
			X: 4645025, Y: 1535113, W: 4041775, H: 639762},
		{Idx: 4, Size: "quarter", Name: "Content Placeholder 5", Prompt: "Click to edit Master text styles",
			X: 4645025, Y: 2174875, W: 4041775, H: 3951288},
	}},
	{ID: 5, Type: "titleOnly", Name: "Title Only", Shapes: []placeholderDef{titleShape}},
	{ID: 6, Type: "blank", Name: "Blank"},
}

func layoutByID(id int) (layoutDef, bool) {
	if id < 0 || id >= len(layouts) {
		return layoutDef{}, false
	}
	return layouts[id], true
}
