package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/elementgen/pkg/action/history"
	"github.com/cmmoran/elementgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewHistoryCommand())
}

func NewHistoryCommand() *cobra.Command {
	var manifestPath string

	var historyCmd = &cobra.Command{
		Use:   "history",
		Short: "inspect recorded generations",
	}
	historyCmd.PersistentFlags().StringVar(&manifestPath, "manifest", generator.DefaultManifest, "manifest written by generate")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list files of the current generation",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := history.List(manifestPath)
			if err != nil {
				return err
			}
			for _, p := range m.Current.Paths() {
				c.Println(p)
			}
			return nil
		},
	})
	historyCmd.AddCommand(&cobra.Command{
		Use:   "diff",
		Short: "diff the file lists of the previous and current generation",
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := history.Diff(manifestPath)
			if err != nil {
				return err
			}
			c.Print(diff)
			return nil
		},
	})

	return historyCmd
}
