// Command cellframe-demo exercises the engine in full-screen and inline modes
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/cellframe/config"
	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/loop"
	"github.com/lixenwraith/cellframe/render"
	"github.com/lixenwraith/cellframe/style"
	"github.com/lixenwraith/cellframe/terminal"
)

// options holds flag values shared by every command
type options struct {
	configPath string
	debug      bool
	colorMode  string
	accent     string

	fps       int
	maxEvents int
	exitKey   string
	diffMode  string
	noMouse   bool

	height    int
	tasks     int
	ticksEach int
}

func main() {
	// Terminal must be restored even if the demo crashes outside the loop units
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCELLFRAME-DEMO CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "cellframe-demo",
		Short:        "Terminal rendering engine demo",
		SilenceUsage: true,
	}
	bindCommonFlags(root.PersistentFlags(), opts)

	root.AddCommand(newRunCmd(opts), newInlineCmd(opts), newKeysCmd(opts))
	return root
}

func bindCommonFlags(fs *pflag.FlagSet, opts *options) {
	fs.StringVar(&opts.configPath, "config", "", "TOML config file applied before flags")
	fs.BoolVar(&opts.debug, "debug", false, "Write logs to "+logDir+"/"+logFileName)
	fs.StringVar(&opts.colorMode, "color", "auto", "Color mode: auto, truecolor, 256")
	fs.StringVar(&opts.accent, "accent", "orange", "Accent color name or #rrggbb")
	fs.IntVar(&opts.fps, "fps", config.DefaultFrameLimit, "Frame limit, 0 is unlimited")
	fs.IntVar(&opts.maxEvents, "max-events", config.DefaultMaxEventsPerFrame, "Events kept per frame")
	fs.StringVar(&opts.exitKey, "exit-key", config.DefaultExitKey, "Key that ends the demo")
	fs.StringVar(&opts.diffMode, "diff-mode", config.DiffCell, "Diff mode: cell or line")
	fs.BoolVar(&opts.noMouse, "no-mouse", false, "Do not capture the mouse")
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Full-screen showcase on the alternate screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), opts, nil)
			if err != nil {
				return err
			}
			accent, err := style.ParseColor(opts.accent)
			if err != nil {
				return err
			}
			return runTarget(cmd.Context(), opts, cfg, newShowcase(accent, cfg.ExitKeyName), nil)
		},
	}
}

func newInlineCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inline",
		Short: "Progress list drawn below the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), opts, func(c config.Config) config.Config {
				c = c.Inline(1)
				c.MouseCapture = false
				return c
			})
			if err != nil {
				return err
			}
			accent, err := style.ParseColor(opts.accent)
			if err != nil {
				return err
			}
			target := newProgress(opts.tasks, opts.ticksEach, accent)
			return runTarget(cmd.Context(), opts, cfg, target, func(l *loop.Loop) {
				target.onDone = l.Stop
			})
		},
	}
	cmd.Flags().IntVar(&opts.tasks, "tasks", 8, "Number of tasks")
	cmd.Flags().IntVar(&opts.ticksEach, "ticks", 30, "Ticks per task")
	return cmd
}

func newKeysCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print decoded input events inline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), opts, func(c config.Config) config.Config {
				return c.Inline(1)
			})
			if err != nil {
				return err
			}
			target := &keyViewer{maxRows: max(opts.height, 2), exit: cfg.ExitKeyName}
			return runTarget(cmd.Context(), opts, cfg, target, nil)
		},
	}
	cmd.Flags().IntVar(&opts.height, "height", 12, "Maximum rows")
	return cmd
}

// resolveConfig layers defaults, the mode, the config file and explicitly set flags, in that order
func resolveConfig(fs *pflag.FlagSet, opts *options, mode func(config.Config) config.Config) (config.Config, error) {
	cfg := config.Default()
	if mode != nil {
		cfg = mode(cfg)
	}
	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadOver(cfg, opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	if fs.Changed("fps") {
		cfg.FrameLimit = opts.fps
	}
	if fs.Changed("max-events") {
		cfg.MaxEventsPerFrame = opts.maxEvents
	}
	if fs.Changed("exit-key") {
		cfg.ExitKeyName = opts.exitKey
	}
	if fs.Changed("diff-mode") {
		cfg.DiffMode = opts.diffMode
	}
	if opts.noMouse {
		cfg.MouseCapture = false
	}
	return cfg, cfg.Validate()
}

func resolveColorMode(name string) style.ColorMode {
	switch name {
	case "256":
		return style.ColorMode256
	case "truecolor", "true", "24bit":
		return style.ColorModeTrueColor
	}
	return style.DetectColorMode()
}

// runTarget drives target on the controlling terminal until exit, interrupt or failure
func runTarget(ctx context.Context, opts *options, cfg config.Config, target render.Target, wire func(*loop.Loop)) error {
	logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := newLogger(logFile)
	log.Printf("starting: inline=%v diff=%s fps=%d", cfg.InlineMode, cfg.DiffMode, cfg.FrameLimit)

	term := terminal.New(logger)
	l, err := loop.New(target, term, cfg,
		loop.WithLogger(logger),
		loop.WithColorMode(resolveColorMode(opts.colorMode)),
	)
	if err != nil {
		return err
	}
	if wire != nil {
		wire(l)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = l.Run(ctx)
	log.Printf("stopped: frames=%d dropped=%d err=%v", l.Frames(), l.Dropped(), err)

	var engineErr *core.Error
	if core.KindOf(err) == core.KindThreadPanic && errors.As(err, &engineErr) {
		fmt.Fprintf(os.Stderr, "%s unit panicked: %v\n%s\n", engineErr.Unit, engineErr.Value, engineErr.Stack)
	}
	return err
}
