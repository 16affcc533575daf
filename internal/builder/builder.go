package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-remote-io/pkg/s3factory"

	"github.com/shouni/go-slide-kit/internal/runner"

	kitconfig "github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	kitrunner "github.com/shouni/go-slide-kit/pkg/runner"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"
	"github.com/shouni/go-slide-kit/pkg/workflow"
)

// BuildSearchRunner は下調べの検索を担当する Runner を構築します。
func BuildSearchRunner(ctx context.Context, appCtx *AppContext) *runner.SearchRunner {
	return runner.NewSearchRunner(appCtx.searcher, appCtx.Runner.SearchResults)
}

// BuildOutlineRunner は構成案の生成を担当する Runner を構築します。
func BuildOutlineRunner(ctx context.Context, appCtx *AppContext) (runner.OutlineRunner, error) {
	if appCtx.generator == nil {
		return nil, fmt.Errorf("テキスト生成クライアントが初期化されていないのだ")
	}
	return kitrunner.NewSlideOutlineRunner(appCtx.Runner, appCtx.prompts, appCtx.generator), nil
}

// BuildContentRunner は各スライドの詳細化を担当する Runner を構築します。
func BuildContentRunner(ctx context.Context, appCtx *AppContext) (runner.ContentRunner, error) {
	if appCtx.generator == nil {
		return nil, fmt.Errorf("テキスト生成クライアントが初期化されていないのだ")
	}
	return kitrunner.NewSlideContentRunner(appCtx.Runner, appCtx.prompts, appCtx.generator), nil
}

// BuildPublisherRunner はデッキの組み立てと保存を行う Runner を構築します。
func BuildPublisherRunner(ctx context.Context, appCtx *AppContext) (runner.PublisherRunner, error) {
	if appCtx.Theme == nil {
		return nil, fmt.Errorf("テーマが解決されていないのだ")
	}
	if appCtx.Writer == nil {
		return nil, fmt.Errorf("出力先が設定されていないのだ")
	}
	return kitrunner.NewDeckPublishRunner(appCtx.Theme, appCtx.Writer), nil
}

// InitializeAIClient は gemini クライアントを初期化し、流量制限とリトライで包みます。
func InitializeAIClient(ctx context.Context, rc kitconfig.Config) (generator.TextGenerator, error) {
	return workflow.NewTextGenerator(ctx, rc)
}

// InitializeSearcher は SerpAPI クライアントを初期化します。
// APIキーが無ければ警告を出し、文脈なしで続行するための Noop を返すのだ。
func InitializeSearcher(ctx context.Context, apiKey string) search.Searcher {
	if apiKey == "" {
		slog.WarnContext(ctx, "SERP_API_KEY が設定されていないため、検索なしで生成するのだ")
		return search.Noop{}
	}
	return search.NewSerpClient(apiKey)
}

// ResolveTheme はテーマファイルか組み込みテーマ名からテーマを決定します。
// ファイルの誤りはエラーにし、未知のテーマ名は警告の上で modern を使うのだ。
func ResolveTheme(ctx context.Context, name, file string) (*theme.Theme, error) {
	if file != "" {
		t, err := theme.LoadFile(file)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "テーマファイルを読み込んだのだ", "file", file, "theme", t.Name)
		return t, nil
	}

	t, err := theme.Get(name)
	if err != nil {
		slog.WarnContext(ctx, "未知のテーマなので modern を使うのだ", "theme", name, "error", err)
		return theme.Modern(), nil
	}
	return t, nil
}

// InitializeWriter は出力先に応じた remoteio の Writer を初期化します。
// gs:// なら GCS、s3:// ならS3のクライアントを作り、それ以外はクライアントなしでローカルに書くのだ。
// 返す close はクライアントを解放するので、書き込みが終わったら呼ぶのだ。
func InitializeWriter(ctx context.Context, output string) (publisher.OutputWriter, func() error, error) {
	noop := func() error { return nil }

	switch {
	case remoteio.IsGCSURI(output):
		gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("GCSクライアントファクトリの作成に失敗したのだ: %w", err)
		}
		writer, err := gcsFactory.NewOutputWriter()
		if err != nil {
			_ = gcsFactory.Close()
			return nil, noop, err
		}
		return writer, gcsFactory.Close, nil

	case remoteio.IsS3URI(output):
		s3Factory, err := s3factory.NewS3ClientFactory(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("S3クライアントファクトリの作成に失敗したのだ: %w", err)
		}
		writer, err := s3Factory.NewOutputWriter()
		if err != nil {
			return nil, noop, err
		}
		return writer, noop, nil

	default:
		return publisher.NewLocalWriter(), noop, nil
	}
}
