package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shouni/go-slide-kit/internal/config"
	"github.com/shouni/go-slide-kit/pkg/theme"
)

const (
	appName         = "ap-slide-go"
	exitError       = 1
	exitInterrupted = 130
)

// opts は CLI フラグの値を受け取るのだ。
var opts config.GenerateOptions

// rootCmd は、トピックからスライドデッキを生成するのだ。
var rootCmd = &cobra.Command{
	Use:   appName + " TOPIC",
	Short: "トピックを調べて、AIでスライドデッキを生成するのだ。",
	Long: `トピックを SerpAPI で検索し、その結果を Gemini に渡して構成案と各スライドの本文を作るのだ。
出力ファイルの拡張子で形式（.pptx / .pdf / .md）が決まるのだよ。`,
	Example: `  ap-slide-go "Artificial Intelligence in Healthcare"
  ap-slide-go "Climate Change" --theme corporate --slides 8 --output climate.pptx
  ap-slide-go "Go Concurrency" -o go.pdf -v`,
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: preRunAppE,
	RunE:              generateCommand,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(outlineCmd, themesCmd)
}

// addAppFlags は、アプリケーション全般に適用されるフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output", "o", config.DefaultOutputFile, "出力ファイルのパス（.pptx / .pdf / .md）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Theme, "theme", "t", config.DefaultTheme, fmt.Sprintf("テーマ名なのだ（%s）。", strings.Join(theme.ChoiceNames(), ", ")))
	rootCmd.PersistentFlags().StringVar(&opts.ThemeFile, "theme-file", "", "YAML で定義したテーマファイルなのだ。--theme より優先するのだ。")

	// --- デッキの規模 ---
	rootCmd.PersistentFlags().IntVarP(&opts.Slides, "slides", "s", 0, "生成するスライド数なのだ（既定は DEFAULT_SLIDE_COUNT か 10）。")
	rootCmd.PersistentFlags().IntVar(&opts.SearchResults, "search-results", 0, "検索結果の取得件数なのだ（既定は MAX_SEARCH_RESULTS か 10）。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "使用する Gemini モデル名なのだ（既定は GEMINI_MODEL）。")
	rootCmd.PersistentFlags().IntVar(&opts.Concurrency, "concurrency", 1, "スライド本文を同時に生成する数なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "生成リクエスト1回あたりのタイムアウトなのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "詳細なログを出すのだ。")
}

// preRunAppE は、ログの設定を行うのだ。実行ごとの ID をすべてのログに付けるのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler).With("run_id", uuid.NewString()))
	return nil
}

// loadConfig は環境設定を読み込み、TOPIC と CLI オプションを検証して結び付けるのだ。
// 規模のフラグが省略されたときは環境設定の値を使うのだ。
func loadConfig(cmd *cobra.Command, topic string) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	opts.Topic = strings.TrimSpace(topic)
	if !cmd.Flags().Changed("slides") {
		opts.Slides = cfg.DefaultSlideCount
	}
	if !cmd.Flags().Changed("search-results") {
		opts.SearchResults = cfg.MaxSearchResults
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("環境変数 GOOGLE_API_KEY（または GEMINI_API_KEY）が設定されていません。Gemini APIの利用には必須なのだ")
	}
	cfg.Options = opts
	return cfg, nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// SIGINT / SIGTERM で中断したら 130、失敗したら 1 で終了するのだ。
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		slog.Warn("処理が中断されたのだ")
		stop()
		os.Exit(exitInterrupted)
	}
	fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
	stop()
	os.Exit(exitError)
}
