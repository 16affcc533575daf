package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/pkg/config"
	"github.com/shouni/go-slide-kit/pkg/domain"
	"github.com/shouni/go-slide-kit/pkg/generator"
	"github.com/shouni/go-slide-kit/pkg/prompts"
	"github.com/shouni/go-slide-kit/pkg/publisher"
	"github.com/shouni/go-slide-kit/pkg/runner"
	"github.com/shouni/go-slide-kit/pkg/search"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

// ManagerArgs は Manager の初期化に使う依存です。
// Generator、Searcher、PromptBuilder、Theme は省略すると Config から既定のものを作ります。
type ManagerArgs struct {
	Config        config.Config
	Writer        publisher.OutputWriter
	Generator     generator.TextGenerator
	Searcher      search.Searcher
	PromptBuilder prompts.PromptBuilder
	Theme         *theme.Theme
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg       config.Config
	writer    publisher.OutputWriter
	generator generator.TextGenerator
	searcher  search.Searcher
	prompts   prompts.PromptBuilder
	theme     *theme.Theme
}

// New は、設定を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	gen := args.Generator
	if gen == nil {
		var err error
		if gen, err = NewTextGenerator(ctx, args.Config); err != nil {
			return nil, err
		}
	}

	pb, err := initializePromptBuilder(args.PromptBuilder)
	if err != nil {
		return nil, err
	}

	t := args.Theme
	if t == nil {
		t = theme.Modern()
	}

	return &Manager{
		cfg:       args.Config,
		writer:    args.Writer,
		generator: gen,
		searcher:  initializeSearcher(ctx, args.Searcher, args.Config.SerpAPIKey),
		prompts:   pb,
		theme:     t,
	}, nil
}

// NewTextGenerator は Gemini クライアントを初期化し、流量制限・リトライ・キャッシュで包んで返します。
func NewTextGenerator(ctx context.Context, cfg config.Config) (generator.TextGenerator, error) {
	client, err := generator.NewGeminiClient(ctx, generator.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return generator.NewControlledGenerator(client, generator.Options{
		RateInterval: cfg.RateInterval,
	}), nil
}

// initializePromptBuilder は PromptBuilder を初期化します。
// 引数として既存のビルダーが渡された場合はそれを返し、nil の場合は新規作成します。
func initializePromptBuilder(pb prompts.PromptBuilder) (prompts.PromptBuilder, error) {
	if pb != nil {
		return pb, nil
	}

	b, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}
	return b, nil
}

// initializeSearcher は Searcher を決定します。
// 渡されたものが無く API キーも無ければ、検索なしで動く Noop を返します。
func initializeSearcher(ctx context.Context, s search.Searcher, apiKey string) search.Searcher {
	if s != nil {
		return s
	}
	if apiKey == "" {
		slog.WarnContext(ctx, "SerpAPI キーが無いため検索なしで生成します")
		return search.Noop{}
	}
	return search.NewSerpClient(apiKey)
}

// Search はトピックを検索します。失敗や0件は警告を出して nil を返します。
func (m *Manager) Search(ctx context.Context, topic string) []search.Result {
	results, err := m.searcher.Search(ctx, topic, m.cfg.SearchResults)
	if err != nil {
		slog.WarnContext(ctx, "検索に失敗したため検索結果なしで続行します", "topic", topic, "error", err)
		return nil
	}
	return results
}

// Generate は検索から保存までを一通り実行します。
// 構成案の生成に失敗した場合はエラーを返します。代替デッキが必要なら呼び出し側で用意してください。
func (m *Manager) Generate(ctx context.Context, topic, outputPath string) (runner.PublishResult, error) {
	results := m.Search(ctx, topic)

	outlineRunner, err := m.BuildOutlineRunner()
	if err != nil {
		return runner.PublishResult{}, err
	}
	outline, err := outlineRunner.Run(ctx, topic, results)
	if err != nil {
		return runner.PublishResult{}, err
	}

	contentRunner, err := m.BuildContentRunner()
	if err != nil {
		return runner.PublishResult{}, err
	}
	enriched, err := contentRunner.Run(ctx, *outline, results)
	if err != nil {
		return runner.PublishResult{}, err
	}

	return m.Publish(ctx, enriched, outputPath)
}

// Publish は構成案をデッキにして保存します。
func (m *Manager) Publish(ctx context.Context, outline domain.Outline, outputPath string) (runner.PublishResult, error) {
	publishRunner, err := m.BuildPublishRunner()
	if err != nil {
		return runner.PublishResult{}, err
	}
	return publishRunner.Run(ctx, outline, outputPath)
}
