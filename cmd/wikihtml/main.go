package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"pkt.systems/version"

	"pkt.systems/wikihtml"
	"pkt.systems/wikihtml/internal/config"
	"pkt.systems/wikihtml/internal/preview"
	"pkt.systems/wikihtml/internal/watch"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2

	// serveFromConfig is the value of a bare --serve.
	serveFromConfig = "config"
)

func init() {
	version.SetDefaultModule("pkt.systems/wikihtml")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cli struct {
	stderr io.Writer
}

func (c *cli) errorf(format string, args ...any) {
	fmt.Fprintf(c.stderr, "wikihtml: "+format+"\n", args...)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stderr: stderr}
	var (
		outPath     string
		configPath  string
		serveAddr   string
		noValidate  bool
		watchMode   bool
		listThemes  bool
		showSyntax  bool
		showVersion bool
		boring      bool
		themeName   string
		page        bool
		title       string
		stripFM     bool
		logLevel    string
		watchBounce = watch.DefaultDebounce
	)

	flags := pflag.NewFlagSet("wikihtml", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&configPath, "config", "", "TOML configuration file")
	flags.StringVarP(&themeName, "theme", "t", "default", config.Usage("Theme"))
	flags.BoolVar(&page, "page", false, config.Usage("Page"))
	flags.StringVar(&title, "title", "", config.Usage("Title"))
	flags.BoolVarP(&boring, "boring", "b", false, "Page without theme styles")
	flags.BoolVar(&stripFM, "strip-front-matter", false, config.Usage("StripFrontMatter"))
	flags.BoolVar(&noValidate, "no-validate", false, "Skip the UTF-8 and binary input checks")
	flags.StringVar(&serveAddr, "serve", "", "Run the live preview server (on ADDR, default from config)")
	flags.Lookup("serve").NoOptDefVal = serveFromConfig
	flags.BoolVar(&watchMode, "watch", false, "Re-render the input file to --output on every save")
	flags.DurationVar(&watchBounce, "watch-debounce", watchBounce, config.Usage("WatchDebounce"))
	flags.StringVar(&logLevel, "log-level", "info", config.Usage("LogLevel"))
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&showSyntax, "syntax", false, "Print the markup cheat sheet")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: wikihtml [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are files, file:// or http(s):// URLs, concatenated in order.")
		fmt.Fprintln(stderr, "If no input is provided, wiki markup is read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	switch {
	case showVersion:
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return exitOK
	case listThemes:
		printThemes(stdout)
		return exitOK
	case showSyntax:
		if err := writeSyntax(stdout, terminalWidth(stdout, defaultWidth)); err != nil {
			c.errorf("syntax: %v", err)
			return exitError
		}
		return exitOK
	}

	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		c.errorf("config: %v", err)
		return exitUsage
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		c.errorf("config: %v", err)
		return exitUsage
	}
	if noValidate {
		cfg.Validate = false
	}
	if flags.Changed("serve") && serveAddr != serveFromConfig {
		cfg.ServeAddr = serveAddr
	}

	theme, ok := wikihtml.ThemeByName(cfg.Theme)
	if !ok {
		c.errorf("unknown theme %q", cfg.Theme)
		fmt.Fprintln(stderr)
		printThemes(stderr)
		return exitUsage
	}
	if boring {
		theme = boringTheme()
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		c.errorf("config: %v", err)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	opts := renderOptions(cfg, theme)

	switch {
	case flags.Changed("serve"):
		if watchMode {
			c.errorf("--serve and --watch are mutually exclusive")
			return exitUsage
		}
		srv := preview.New(preview.Options{
			Theme:         theme,
			Logger:        logger,
			RenderOptions: fragmentOptions(cfg),
		})
		if err := srv.ListenAndServe(ctx, cfg.ServeAddr); err != nil {
			c.errorf("serve: %v", err)
			return exitError
		}
		return exitOK
	case watchMode:
		return c.watch(ctx, flags.Args(), outPath, cfg, logger, opts)
	}

	inputs := flags.Args()
	if len(inputs) == 0 && isTerminal(stdin) {
		flags.Usage()
		return exitUsage
	}
	reader, closer, err := openInputs(inputs, stdin)
	if err != nil {
		c.errorf("open input: %v", err)
		return exitError
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		c.errorf("open output: %v", err)
		return exitError
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	if err := wikihtml.Convert(wikihtml.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Options: opts,
	}); err != nil {
		c.errorf("render: %v", err)
		return exitError
	}
	return exitOK
}

func (c *cli) watch(ctx context.Context, inputs []string, outPath string, cfg *config.Config, logger *slog.Logger, opts []wikihtml.RenderOption) int {
	if len(inputs) != 1 || outPath == "" {
		c.errorf("--watch needs exactly one input file and --output")
		return exitUsage
	}
	src, err := makeInputSource(inputs[0])
	if err != nil || src.path == "" {
		c.errorf("--watch needs a local file input")
		return exitUsage
	}
	w := &watch.Watcher{
		Input:    src.path,
		Output:   normalizePath(outPath),
		Debounce: cfg.WatchDebounce,
		Logger:   logger,
		Render: func(b []byte) ([]byte, error) {
			return wikihtml.ConvertBytes(b, opts...)
		},
	}
	if err := w.Run(ctx); err != nil {
		c.errorf("%v", err)
		return exitError
	}
	return exitOK
}

// fragmentOptions are the options that shape input handling only.
func fragmentOptions(cfg *config.Config) []wikihtml.RenderOption {
	return []wikihtml.RenderOption{
		wikihtml.WithFrontMatterStripped(cfg.StripFrontMatter),
		wikihtml.WithValidation(cfg.Validate),
	}
}

func renderOptions(cfg *config.Config, theme wikihtml.Theme) []wikihtml.RenderOption {
	opts := fragmentOptions(cfg)
	if cfg.Page {
		opts = append(opts, wikihtml.WithPage(cfg.Title, theme))
	}
	return opts
}

func printThemes(w io.Writer) {
	for _, name := range wikihtml.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func boringTheme() wikihtml.Theme {
	return wikihtml.NewTheme("boring", wikihtml.Styles{})
}
