package parser

import (
	"strconv"

	"github.com/tidwall/gjson"
)

var slideRequiredKeys = []string{"slide_number", "title", "type"}

// ValidOutline はペイロードが title と空でない slides 配列を持ち、
// 各スライドが slide_number・title・type を持つかを判定します。
func ValidOutline(payload string) bool {
	_, ok := checkOutline(gjson.Parse(payload))
	return ok
}

// ValidSlideContent はペイロードが title と配列の bullet_points を持つかを判定します。
// bullet_points は空配列でも構いません。
func ValidSlideContent(payload string) bool {
	_, ok := checkSlideContent(gjson.Parse(payload))
	return ok
}

func checkOutline(doc gjson.Result) (string, bool) {
	if !doc.IsObject() {
		return "トップレベルがオブジェクトではありません", false
	}
	if !doc.Get("title").Exists() {
		return "title がありません", false
	}
	slides := doc.Get("slides")
	if !slides.Exists() {
		return "slides がありません", false
	}
	if !slides.IsArray() {
		return "slides が配列ではありません", false
	}
	items := slides.Array()
	if len(items) == 0 {
		return "slides が空です", false
	}
	for i, s := range items {
		if !s.IsObject() {
			return "slides[" + strconv.Itoa(i) + "] がオブジェクトではありません", false
		}
		for _, key := range slideRequiredKeys {
			if !s.Get(key).Exists() {
				return "slides[" + strconv.Itoa(i) + "] に " + key + " がありません", false
			}
		}
	}
	return "", true
}

func checkSlideContent(doc gjson.Result) (string, bool) {
	if !doc.IsObject() {
		return "トップレベルがオブジェクトではありません", false
	}
	if !doc.Get("title").Exists() {
		return "title がありません", false
	}
	bullets := doc.Get("bullet_points")
	if !bullets.Exists() {
		return "bullet_points がありません", false
	}
	if !bullets.IsArray() {
		return "bullet_points が配列ではありません", false
	}
	return "", true
}
