package director

import (
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// layoutAliases はテーマに専用レイアウトを持たない種別の割り当てです。
var layoutAliases = map[string]string{
	string(domain.KindConclusion): theme.LayoutContent,
}

// LayoutResolver はスライドの意図をテーマの具体的なレイアウトと書式に変換します。
// 結果はテーマと名前だけで決まります。
type LayoutResolver struct {
	theme *theme.Theme
}

// NewLayoutResolver は新しい LayoutResolver を作成します。
func NewLayoutResolver(t *theme.Theme) *LayoutResolver {
	return &LayoutResolver{theme: t}
}

// Theme は解決に使っているテーマを返します。
func (r *LayoutResolver) Theme() *theme.Theme {
	return r.theme
}

// Resolve はレイアウト名に対応する SlideLayout を返します。
// テーマに無い名前は *domain.UnknownLayoutError になります。
func (r *LayoutResolver) Resolve(name string) (theme.SlideLayout, error) {
	key := name
	if alias, ok := layoutAliases[name]; ok {
		if _, defined := r.theme.Layout(name); !defined {
			key = alias
		}
	}
	l, ok := r.theme.Layout(key)
	if !ok {
		return theme.SlideLayout{}, &domain.UnknownLayoutError{Name: name, Available: r.theme.LayoutNames()}
	}
	return l, nil
}
