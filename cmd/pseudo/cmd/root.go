// Package cmd contains pseudo subcommands.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ava12/pseudo/internal/config"
	"github.com/ava12/pseudo/langdef"
	"github.com/ava12/pseudo/source"
)

// app holds global flag values and state shared by subcommands of one invocation.
type app struct {
	cfgFile  string
	lang     string
	langFile string
	verbose  bool

	cfg      *config.Config
	language *langdef.Language
	logger   *slog.Logger
	sources  map[string]*source.Source
}

// Execute runs the command line and returns process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{sources: make(map[string]*source.Source)}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		a.report(stderr, err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pseudo",
		Short: "Pseudocode interpreter",
		Long: `pseudo runs programs written in an indentation-sensitive pseudocode
used for teaching programming, and shows how they are tokenized and parsed.

Keywords may be English (default), any built-in language or a language
defined in a TOML or YAML file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $PSEUDO_CONFIG, ./pseudo.toml, ~/.config/pseudo/config.toml)")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "built-in keyword language")
	root.PersistentFlags().StringVar(&a.langFile, "lang-file", "", "keyword language definition file (.toml, .yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		a.runCommand(),
		a.tokensCommand(),
		a.treeCommand(),
		a.grammarCommand(),
		a.langsCommand(),
		versionCommand(),
	)
	return root
}

// setup loads config, merges global flags into it and prepares logger and keyword language.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Discover(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.logger = cfg.Log.NewLogger(cmd.ErrOrStderr())
	if path != "" {
		a.logger.Debug("config loaded", "path", path)
	}

	name, file := cfg.Language, cfg.LanguageFile
	flags := cmd.Flags()
	if flags.Changed("lang") {
		name, file = a.lang, ""
	}
	if flags.Changed("lang-file") {
		file = a.langFile
	}

	a.language, err = langdef.Select(name, file)
	if err != nil {
		return err
	}
	a.logger.Debug("keyword language selected", "name", a.language.Name)
	return nil
}

// readSource reads program file, "-" means standard input.
func (a *app) readSource(cmd *cobra.Command, path string) (*source.Source, error) {
	var (
		data []byte
		err  error
		name = path
	)
	if path == "-" {
		name = "<stdin>"
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	src := source.New(name, string(data))
	a.sources[name] = src
	return src, nil
}
