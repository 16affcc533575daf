package director

import "github.com/shouni/go-slide-kit/pkg/theme"

const (
	bodyMarginInches    = 0.1
	bulletSpaceAfterPt  = 4
	bulletSpaceBeforePt = 0
)

// Formatting は役割ごとの書式を返します。未知の役割は本文として扱います。
func (r *LayoutResolver) Formatting(role theme.Role) theme.Formatting {
	fonts := r.theme.Fonts
	color := r.theme.Colors.Get("text_dark")

	switch role {
	case theme.RoleTitle:
		return theme.Formatting{
			Font:  fonts.TitleFont,
			Size:  fonts.TitleSize,
			Color: color,
			Bold:  true,
			Align: theme.AlignCenter,
		}
	case theme.RoleSubtitle:
		return theme.Formatting{
			Font:  fonts.BodyFont,
			Size:  fonts.SubtitleSize,
			Color: color,
			Align: theme.AlignCenter,
		}
	case theme.RoleBullets:
		// 箇条書きは本文の枠設定に段落間隔を足したものです。
		f := r.bodyFormatting()
		f.Spacing = &theme.Spacing{Before: bulletSpaceBeforePt, After: bulletSpaceAfterPt}
		f.Level = 0
		return f
	default:
		return r.bodyFormatting()
	}
}

func (r *LayoutResolver) bodyFormatting() theme.Formatting {
	return theme.Formatting{
		Font:     r.theme.Fonts.BodyFont,
		Size:     r.theme.Fonts.BodySize,
		Color:    r.theme.Colors.Get("text_dark"),
		Margins:  theme.UniformMargins(bodyMarginInches),
		WordWrap: true,
		AutoFit:  theme.AutoFitShrink,
	}
}
