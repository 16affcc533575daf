package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-slide-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCommand は、検索・構成案・本文生成・保存をすべて実行するのだ。
func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	res, err := pipeline.ExecuteGenerate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！", "file", res.Path, "slides", res.Slides, "theme", cfg.Options.Theme)
	fmt.Fprintf(cmd.OutOrStdout(), "Presentation generated: %s (%d slides)\n", res.Path, res.Slides)
	return nil
}
