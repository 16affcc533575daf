package director

import (
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/domain"
)

// ReadableBulletCount は1枚のスライドで読みやすいとされる箇条書きの数です。
const ReadableBulletCount = 5

// ExtractBullets は本文の形の違いを吸収し、スライドに描く箇条書きの文字列列を返します。
//
// 優先順位:
//  1. bullet_points があればそれを正規化したもの
//  2. 無ければ構造化 content の key_points、themes、supporting_data の順
//  3. それでも空ならトップレベルの key_points
//
// 件数が多くても切り詰めず、ログに残すだけです。
func ExtractBullets(body domain.Body) []string {
	var bullets []string

	switch {
	case body.HasBulletPoints:
		for _, bp := range body.BulletPoints {
			if text, ok := bp.Text(); ok {
				bullets = append(bullets, text)
			}
		}
	case body.Content != nil:
		bullets = append(bullets, body.Content.KeyPoints...)
		for _, th := range body.Content.Themes {
			bullets = append(bullets, "Key theme: "+th)
		}
		for _, d := range body.Content.SupportingData {
			bullets = append(bullets, "Supporting fact: "+d)
		}
	}

	if len(bullets) == 0 && len(body.KeyPoints) > 0 {
		bullets = append(bullets, body.KeyPoints...)
	}

	if len(bullets) > ReadableBulletCount {
		slog.Info("箇条書きが推奨数を超えています", "count", len(bullets), "recommended", ReadableBulletCount)
	}
	return bullets
}
