// Package backend はスライドを実際の文書形式に書き出すバックエンドの共通インターフェースを定義します。
package backend

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/shouni/go-slide-kit/pkg/theme"
)

// ErrNoSuchPlaceholder はレイアウトに存在しないプレースホルダー番号が指定された場合に返されます。
var ErrNoSuchPlaceholder = errors.New("プレースホルダーが存在しません")

// ErrNoSuchLayout はバックエンドが扱えないレイアウト番号が指定された場合に返されます。
var ErrNoSuchLayout = errors.New("レイアウトが存在しません")

// Document は1つの出力文書です。
type Document interface {
	// CreateSlide は指定したレイアウトのスライドを末尾に追加します。
	CreateSlide(layoutID int) (Slide, error)
	// ContentType は保存時に書き込み先へ渡す MIME タイプです。
	ContentType() string
	// Extension は ".pptx" のような既定の拡張子です。
	Extension() string
	// Encode は文書全体を w に書き出します。
	Encode(w io.Writer) error
}

// Slide はプレースホルダー番号でテキストを差し込めるスライドです。
type Slide interface {
	SetText(idx int, text string) error
	SetParagraphs(idx int, paragraphs []string) error
	ApplyFormatting(idx int, f theme.Formatting) error
}

// PlaceholderError はどのスライドのどのプレースホルダーで失敗したかを保持します。
type PlaceholderError struct {
	LayoutID int
	Idx      int
	Err      error
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("layout %d placeholder %d: %v", e.LayoutID, e.Idx, e.Err)
}

func (e *PlaceholderError) Unwrap() error { return e.Err }

// Placeholders はレイアウトごとに存在するプレースホルダー番号です。
// 既定テンプレートのレイアウト番号に合わせています。
var Placeholders = map[int][]int{
	0: {0, 1},          // Title Slide
	1: {0, 1},          // Title and Content
	2: {0, 1},          // Section Header
	3: {0, 1, 2},       // Two Content
	4: {0, 1, 2, 3, 4}, // Comparison
	5: {0},             // Title Only
	6: {},              // Blank
}

// HasPlaceholder はレイアウトがそのプレースホルダーを持つかを返します。
func HasPlaceholder(layoutID, idx int) bool {
	return slices.Contains(Placeholders[layoutID], idx)
}

// CheckLayout はレイアウト番号がバックエンドで扱えるかを検証します。
func CheckLayout(layoutID int) error {
	if _, ok := Placeholders[layoutID]; !ok {
		return fmt.Errorf("layout %d: %w", layoutID, ErrNoSuchLayout)
	}
	return nil
}
