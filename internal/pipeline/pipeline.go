package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-slide-kit/internal/builder"
	"github.com/shouni/go-slide-kit/internal/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/parser"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	kitrunner "github.com/shouni/go-slide-kit/pkg/runner"
	"github.com/shouni/go-slide-kit/pkg/search"
)

const (
	outlineContentType = "application/json"
	stdoutPath         = "-"
)

// ExecuteGenerate は、検索から保存までの全工程（Phase 1〜4）を実行するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config) (kitrunner.PublishResult, error) {
	appCtx, cleanup, err := setupAppContext(ctx, cfg)
	if err != nil {
		return kitrunner.PublishResult{}, err
	}
	defer closeWriter(ctx, cleanup)
	return Generate(ctx, appCtx)
}

// Generate は、初期化済みの AppContext を使ってデッキを1つ生成するのだ。
// 構成案の生成に失敗したら検索結果から代替デッキを作って続行するのだ。
func Generate(ctx context.Context, appCtx *builder.AppContext) (kitrunner.PublishResult, error) {
	logStart(ctx, appCtx)

	// --- Phase 1: Search Phase (下調べ) ---
	results := runSearchStep(ctx, appCtx)

	// --- Phase 2: Outline Phase (構成案) ---
	outline, err := runOutlineStep(ctx, appCtx, results)
	if err != nil {
		if ctx.Err() != nil {
			return kitrunner.PublishResult{}, ctx.Err()
		}
		slog.WarnContext(ctx, "構成案の生成に失敗したので、検索結果から代替デッキを作るのだ", "error", err)
		fallback := FallbackOutline(appCtx.Options.Topic, results, appCtx.Runner.SlideCount)
		outline = &fallback
	} else {
		// --- Phase 3: Content Phase (各スライドの詳細化) ---
		enriched, err := runContentStep(ctx, appCtx, *outline, results)
		if err != nil {
			return kitrunner.PublishResult{}, err
		}
		outline = &enriched
	}

	// --- Phase 4: Publish Phase (組み立てと保存) ---
	res, err := runPublishStep(ctx, appCtx, *outline)
	if err != nil {
		return kitrunner.PublishResult{}, err
	}

	slog.InfoContext(ctx, "スライドデッキが完成したのだ！",
		"file", res.Path,
		"slides", res.Slides,
		"theme", appCtx.Theme.Name,
		"topic", appCtx.Options.Topic,
		"search_results", len(results))
	return res, nil
}

// ExecuteOutline は、構成案だけを生成して JSON で書き出すのだ。
// 出力先が空か "-" なら w に書くのだ。
func ExecuteOutline(ctx context.Context, cfg *config.Config, w io.Writer) error {
	appCtx, cleanup, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeWriter(ctx, cleanup)
	return Outline(ctx, appCtx, w)
}

// Outline は、初期化済みの AppContext で構成案を生成して書き出すのだ。
func Outline(ctx context.Context, appCtx *builder.AppContext, w io.Writer) error {
	logStart(ctx, appCtx)

	results := runSearchStep(ctx, appCtx)
	outline, err := runOutlineStep(ctx, appCtx, results)
	if err != nil {
		return err
	}

	data, err := parser.EncodeOutline(*outline)
	if err != nil {
		return fmt.Errorf("構成案のエンコードに失敗したのだ: %w", err)
	}
	data = append(data, '\n')

	path := appCtx.Options.OutputFile
	if path == "" || path == stdoutPath {
		_, err := w.Write(data)
		return err
	}
	if err := appCtx.Writer.Write(ctx, path, bytes.NewReader(data), outlineContentType); err != nil {
		return &domain.PersistError{Path: path, Err: err}
	}
	slog.InfoContext(ctx, "構成案を書き出したのだ", "path", path, "slides", len(outline.Slides))
	return nil
}

// setupAppContext は、提供された設定を使用して、アプリケーションコンテキストを初期化して返すのだ。
// 返す cleanup は出力先のクライアントを解放するのだ。
// 初期化中にエラーが発生した場合は、nil とエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, func() error, error) {
	rc := cfg.RunnerConfig()

	aiClient, err := builder.InitializeAIClient(ctx, rc)
	if err != nil {
		return nil, nil, err
	}
	searcher := builder.InitializeSearcher(ctx, rc.SerpAPIKey)

	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, nil, fmt.Errorf("プロンプトビルダーの初期化に失敗したのだ: %w", err)
	}

	t, err := builder.ResolveTheme(ctx, cfg.Options.Theme, cfg.Options.ThemeFile)
	if err != nil {
		return nil, nil, err
	}

	writer, cleanup, err := builder.InitializeWriter(ctx, cfg.Options.OutputFile)
	if err != nil {
		return nil, nil, err
	}

	appCtx := builder.NewAppContext(cfg, t, searcher, aiClient, pb, writer)
	return &appCtx, cleanup, nil
}

func closeWriter(ctx context.Context, cleanup func() error) {
	if err := cleanup(); err != nil {
		slog.WarnContext(ctx, "出力先クライアントの解放に失敗したのだ", "error", err)
	}
}

func logStart(ctx context.Context, appCtx *builder.AppContext) {
	slog.InfoContext(ctx, "スライド生成パイプラインを起動するのだ！",
		"topic", appCtx.Options.Topic,
		"model", appCtx.Runner.GeminiModel,
		"slides", appCtx.Runner.SlideCount,
		"output", appCtx.Options.OutputFile)
}

// runSearchStep は SearchRunner で下調べを行うのだ
func runSearchStep(ctx context.Context, appCtx *builder.AppContext) []search.Result {
	slog.InfoContext(ctx, "Phase 1: 検索を開始するのだ...", "topic", appCtx.Options.Topic)
	return builder.BuildSearchRunner(ctx, appCtx).Run(ctx, appCtx.Options.Topic)
}

// runOutlineStep は OutlineRunner で構成案を生成するのだ
func runOutlineStep(ctx context.Context, appCtx *builder.AppContext, results []search.Result) (*domain.Outline, error) {
	slog.InfoContext(ctx, "Phase 2: 構成案の生成を開始するのだ...", "search_results", len(results))
	outlineRunner, err := builder.BuildOutlineRunner(ctx, appCtx)
	if err != nil {
		return nil, fmt.Errorf("OutlineRunnerの構築に失敗したのだ: %w", err)
	}

	outline, err := outlineRunner.Run(ctx, appCtx.Options.Topic, results)
	if err != nil {
		return nil, fmt.Errorf("構成案の生成に失敗したのだ: %w", err)
	}
	return outline, nil
}

// runContentStep は ContentRunner で各スライドを詳細化するのだ
func runContentStep(ctx context.Context, appCtx *builder.AppContext, outline domain.Outline, results []search.Result) (domain.Outline, error) {
	slog.InfoContext(ctx, "Phase 3: スライド詳細の生成を開始するのだ...", "slides", len(outline.Slides))
	contentRunner, err := builder.BuildContentRunner(ctx, appCtx)
	if err != nil {
		return domain.Outline{}, fmt.Errorf("ContentRunnerの構築に失敗したのだ: %w", err)
	}

	enriched, err := contentRunner.Run(ctx, outline, results)
	if err != nil {
		return domain.Outline{}, fmt.Errorf("スライド詳細の生成に失敗したのだ: %w", err)
	}
	return enriched, nil
}

// runPublishStep は PublisherRunner でデッキを組み立てて保存するのだ
func runPublishStep(ctx context.Context, appCtx *builder.AppContext, outline domain.Outline) (kitrunner.PublishResult, error) {
	slog.InfoContext(ctx, "Phase 4: デッキの組み立てと保存を開始するのだ...", "output", appCtx.Options.OutputFile)
	publishRunner, err := builder.BuildPublisherRunner(ctx, appCtx)
	if err != nil {
		return kitrunner.PublishResult{}, fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	res, err := publishRunner.Run(ctx, outline, appCtx.Options.OutputFile)
	if err != nil {
		return kitrunner.PublishResult{}, fmt.Errorf("デッキの保存に失敗したのだ: %w", err)
	}
	return res, nil
}
