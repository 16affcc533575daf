package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDeckSaved は保存済みのデッキを再度保存しようとした場合に返されます。
var ErrDeckSaved = errors.New("デッキはすでに保存されています")

// ParseError は生成結果から構造化オブジェクトを復元できなかったことを表します。
type ParseError struct {
	// Excerpt はログ用に切り詰めた生の応答です。
	Excerpt string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("応答のJSON解析に失敗しました (応答抜粋: %q): %v", e.Excerpt, e.Err)
	}
	return fmt.Sprintf("応答のJSON解析に失敗しました (応答抜粋: %q)", e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError はデコードできたペイロードが必須構造を満たさないことを表します。
type StructureError struct {
	// Kind は "outline" または "slide_content" です。
	Kind   string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s の構造が不正です: %s", e.Kind, e.Reason)
}

// UnknownLayoutError はテーマに存在しないレイアウト名が要求されたことを表します。
// 組み立て処理はこれを捕捉して content レイアウトに切り替えます。
type UnknownLayoutError struct {
	Name      string
	Available []string
}

func (e *UnknownLayoutError) Error() string {
	return fmt.Sprintf("未知のレイアウトです: %s (利用可能: %s)", e.Name, strings.Join(e.Available, ", "))
}

// RenderError はバックエンドがスライドの生成や書式設定に失敗したことを表します。実行全体が中断されます。
type RenderError struct {
	SlideNumber int
	Stage       string
	Err         error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("スライド %d の描画に失敗しました (%s): %v", e.SlideNumber, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// PersistError は最終ファイルの書き出しに失敗したことを表します。
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("プレゼンテーションの保存に失敗しました (%s): %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
