package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/elementgen/pkg/action/generate"
	"github.com/cmmoran/elementgen/pkg/generator"
)

func init() {
	var generateCmd = NewGenerateCommand()
	rootCmd.AddCommand(generateCmd)
}

// generateFlags maps config keys under "generate" to their flag names.
var generateFlags = map[string]string{
	"in_dir":       "input-directory",
	"out_dir":      "output-directory",
	"namespace":    "namespace",
	"module_name":  "module-name",
	"template_dir": "template-directory",
	"ext":          "ext",
	"workers":      "workers",
	"targets":      "targets",
	"manifest":     "manifest",
	"pom":          "pom",
	"pom_dir":      "pom-directory",
}

func NewGenerateCommand() *cobra.Command {
	defaults := generator.NewOptions()

	// generateCmd represents the elementgen generate command
	var genCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate wrappers",
		Long:  "Analyze component documents, flatten behaviors and render element, event and widget classes",
		RunE: func(c *cobra.Command, args []string) error {
			cfg := struct {
				Generate *generator.Options `mapstructure:"generate"`
			}{Generate: generator.NewOptions()}
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("read generate options: %w", err)
			}
			res, err := generate.Generate(c.Context(), cfg.Generate)
			if res != nil {
				c.Printf("generated %d files from %d analyzed documents (%d failed)\n", len(res.Units), res.Analysis.Analyzed, res.Analysis.Failed)
			}
			return err
		},
	}
	flags := genCmd.Flags()
	flags.StringP("input-directory", "i", defaults.InDir, "directory holding analyzer documents, one sub directory per component")
	flags.StringP("output-directory", "o", defaults.OutDir, "client source root to write classes under")
	flags.StringP("namespace", "n", defaults.Namespace, "base package of generated classes")
	flags.StringP("module-name", "m", defaults.ModuleName, "module descriptor name")
	flags.StringP("template-directory", "t", "", "directory with templates overriding the built-in ones")
	flags.String("ext", defaults.Ext, "extension of generated class files")
	flags.IntP("workers", "w", 0, "concurrent analyses, 0 uses GOMAXPROCS")
	flags.StringSlice("targets", defaults.Targets, "targets to generate (elements, events, widgets, widget-events, module)")
	flags.String("manifest", defaults.Manifest, "file recording generated outputs, empty disables it")
	flags.Bool("pom", false, "also generate a project descriptor")
	flags.String("pom-directory", defaults.PomDir, "directory of package.json and the generated pom.xml")

	for key, flag := range generateFlags {
		if err := viper.BindPFlag("generate."+key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	return genCmd
}
