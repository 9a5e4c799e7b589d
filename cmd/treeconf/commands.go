// FILE: lixenwraith/treeconfig/cmd/treeconf/commands.go
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/treeconfig"
)

// files holds the values of the repeatable --file flag.
var files []string

// optional holds the value of the --optional flag.
var optional bool

// format holds the value of the --format flag.
var format string

// envPrefix holds the value of the --env-prefix flag.
var envPrefix string

// verbosity holds the count of -v flags.
var verbosity int

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&files, "file", "f", nil,
		"configuration file(s) to load, later files override earlier ones")
	rootCmd.PersistentFlags().BoolVar(&optional, "optional", false,
		"skip files that do not exist")
	rootCmd.PersistentFlags().StringVar(&format, "format", "",
		"force input format: yaml, toml, json, hcl (default: by extension)")
	rootCmd.PersistentFlags().StringVar(&envPrefix, "env-prefix", "",
		"apply environment overrides with this prefix (e.g. APP_)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level")

	dumpCmd.Flags().StringP("output", "o", "yaml", "output format: yaml, toml, json, hcl")

	rootCmd.AddCommand(getCmd, dumpCmd, keysCmd)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "treeconf",
	Short: "Inspect hierarchical configuration files",
	Long: `treeconf loads YAML, TOML, JSON and HCL files into a configuration tree.
Mappings become groups, everything else becomes a setting.`,
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value or group at a dotted path",
	Example: `  treeconf -f app.yaml get database.host
  treeconf -f base.toml -f local.toml get server`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the merged tree in another format",
	Example: `  treeconf -f app.yaml dump -o toml`,
	RunE:  runDump,
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every setting path",
	RunE:  runKeys,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(out io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(NewHandler(out, &slog.HandlerOptions{Level: level}))
}

func loadTree(cmd *cobra.Command, args []string) (*treeconfig.Node, error) {
	if len(files) == 0 {
		return nil, errors.New("at least one --file is required")
	}

	logger := newLogger(cmd.ErrOrStderr())
	b := treeconfig.NewBuilder().
		WithLogger(logger).
		WithFormat(treeconfig.Format(format))

	for _, f := range files {
		if optional {
			b.WithOptionalFile(f)
		} else {
			b.WithFile(f)
		}
	}
	if envPrefix != "" {
		b.WithEnvPrefix(envPrefix)
	}

	root, err := b.Build()
	if err != nil {
		return nil, err
	}
	logger.Info("Configuration loaded.", "files", len(files), "settings", len(root.Paths()))
	return root, nil
}

func runGet(cmd *cobra.Command, args []string) error {
	root, err := loadTree(cmd, args)
	if err != nil {
		return err
	}

	entry, err := root.Lookup(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if g, isGroup := entry.Group(); isGroup {
		return g.Dump(out, treeconfig.FormatYAML)
	}
	_, err = fmt.Fprintln(out, entry.Value())
	return err
}

func runDump(cmd *cobra.Command, args []string) error {
	root, err := loadTree(cmd, args)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	return root.Dump(cmd.OutOrStdout(), treeconfig.Format(output))
}

func runKeys(cmd *cobra.Command, args []string) error {
	root, err := loadTree(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	key := color.New(color.FgCyan).SprintFunc()
	if !SupportsColor(out) {
		key = fmt.Sprint
	}

	return root.Walk(func(path string, value any) error {
		_, err := fmt.Fprintf(out, "%s = %v\n", key(path), value)
		return err
	})
}
