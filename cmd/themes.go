package cmd

import (
	"fmt"
	"strings"

	"github.com/shouni/go-slide-kit/pkg/theme"

	"github.com/spf13/cobra"
)

// themesCmd は、組み込みテーマの一覧を表示するのだ。
var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "組み込みテーマの一覧を表示するのだ。",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, name := range theme.Names() {
			t, err := theme.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-12s primary=%s title_font=%q layouts=%s\n",
				name, t.Colors.Primary.Hex(), t.Fonts.TitleFont, strings.Join(t.LayoutNames(), ","))
		}
		fmt.Fprintln(out, "aliases: default=modern, dark=minimalist")
		return nil
	},
}
