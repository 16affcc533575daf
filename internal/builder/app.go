package builder

import (
	"github.com/shouni/go-slide-kit/internal/config"

	kitconfig "github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config    *config.Config         // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options   config.GenerateOptions // Optionsは、コマンドラインから渡された実行時の設定です（トピック、出力先、テーマなど）。
	Runner    kitconfig.Config       // Runnerは、CLI の指定を反映した pkg 側 Runner 用の設定です。
	Theme     *theme.Theme           // Themeは、デッキの描画に使うテーマです。
	Writer    publisher.OutputWriter // Writerは、完成したデッキを保存するための出力先です。
	searcher  search.Searcher        // searcher は Web 検索に使う共通クライアント
	generator generator.TextGenerator
	prompts   prompts.PromptBuilder
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	t *theme.Theme,
	searcher search.Searcher,
	gen generator.TextGenerator,
	pb prompts.PromptBuilder,
	writer publisher.OutputWriter,
) AppContext {
	return AppContext{
		Config:    cfg,
		Options:   cfg.Options,
		Runner:    cfg.RunnerConfig(),
		Theme:     t,
		Writer:    writer,
		searcher:  searcher,
		generator: gen,
		prompts:   pb,
	}
}
