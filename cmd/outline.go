package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// outlineCmd は、構成案（JSON）の生成のみを実行するのだ。
var outlineCmd = &cobra.Command{
	Use:   "outline TOPIC",
	Short: "構成案（JSON）のみを生成して出力するのだ。",
	Long: `トピックを検索して Gemini に構成案を作らせ、検証済みの JSON を出力するのだ。
各スライドの本文生成とデッキの描画は行わないのだよ。--output を省略すると標準出力に書くのだ。`,
	Args: cobra.ExactArgs(1),
	RunE: outlineCommand,
}

func outlineCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// --output がユーザーによって指定されなかった場合は標準出力に書く
	if !cmd.Flags().Changed("output") {
		opts.OutputFile = "-"
	}

	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	if err := pipeline.ExecuteOutline(ctx, cfg, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("構成案の生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("構成案（JSON）の生成が完了したのだ！", "output", opts.OutputFile)
	return nil
}
