package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cmmoran/elementgen/pkg/action/clean"
	"github.com/cmmoran/elementgen/pkg/generator"
)

func init() {
	rootCmd.AddCommand(NewCleanCommand())
}

func NewCleanCommand() *cobra.Command {
	var manifestPath string

	var cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "remove generated files",
		Long:  "Remove the files recorded by the last generation in the manifest",
		RunE: func(c *cobra.Command, args []string) error {
			removed, err := clean.Clean(manifestPath)
			c.Printf("removed %d files\n", len(removed))
			return err
		},
	}
	cleanCmd.Flags().StringVar(&manifestPath, "manifest", generator.DefaultManifest, "manifest written by generate")

	return cleanCmd
}
