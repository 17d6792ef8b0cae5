package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ava12/pseudo/interp"
)

const watchDebounce = 200 * time.Millisecond

type runOptions struct {
	timeout time.Duration
	vars    bool
	watch   bool
	noColor bool
}

func (a *app) runCommand() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run program",
		Long: `Runs program and prints its output. "-" reads program from standard input.

Each write statement starts a new output line. Execution stops when time limit
is exceeded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.mergeRunOptions(cmd, opts)
			if opts.watch {
				if args[0] == "-" {
					return fmt.Errorf("cannot watch standard input")
				}
				return a.watch(cmd, args[0], opts)
			}
			return a.runFile(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.DurationVar(&opts.timeout, "timeout", 0, "execution time limit, 0 means no limit (default from config)")
	flags.BoolVar(&opts.vars, "vars", false, "print final variables")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "run again each time the file changes")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	return cmd
}

func (a *app) mergeRunOptions(cmd *cobra.Command, opts *runOptions) {
	flags := cmd.Flags()
	if !flags.Changed("timeout") {
		opts.timeout = a.cfg.Timeout.Duration
	}
	if !flags.Changed("vars") {
		opts.vars = a.cfg.ShowVariables
	}
	if opts.noColor {
		a.cfg.Color = "never"
	}
}

func (a *app) runFile(cmd *cobra.Command, path string, opts *runOptions) error {
	src, err := a.readSource(cmd, path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	res, err := interp.Run(cmd.Context(), src, interp.Options{
		Keywords: a.language.Keywords,
		Timeout:  opts.timeout,
		Output:   out,
		Logger:   a.logger,
	})
	if res.Output != "" {
		fmt.Fprintln(out)
	}

	if opts.vars && res.Variables != nil {
		fmt.Fprintln(out, variablesTable(newStyles(out, a.colorMode()), res.Variables))
	}
	return err
}

// watch runs the program, then runs it again after each change of the file until context is done.
// Program errors are reported and do not stop watching.
func (a *app) watch(cmd *cobra.Command, path string, opts *runOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	// editors often replace files, so the directory is watched
	if err = watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st := newStyles(cmd.OutOrStdout(), a.colorMode())
	once := func() {
		fmt.Fprintln(cmd.OutOrStdout(), st.banner.Render(fmt.Sprintf("── %s  %s", path, time.Now().Format(time.TimeOnly))))
		if err := a.runFile(cmd, path, opts); err != nil {
			a.report(cmd.ErrOrStderr(), err)
		}
	}
	return a.watchLoop(ctx, watcher, path, once)
}

func (a *app) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, once func()) error {
	once()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("watching stopped", "path", path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			a.logger.Debug("file changed", "path", path, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(watchDebounce)
			}

		case <-fire:
			once()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("watcher error", "error", err)
		}
	}
}
