package generator

import "context"

// TextGenerator はプロンプトからテキストを生成します。
// 返されるテキストは信頼できない入力として扱い、必ず parser を通して使います。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func は関数を TextGenerator として使うためのアダプターです。
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
