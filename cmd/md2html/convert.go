package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// defaultSource is converted when no source argument or config default is given.
const defaultSource = "model_comparison_report.md"

// dirPermissions is used when --output names a directory that does not exist yet.
const dirPermissions = 0o750

// runConvert resolves configuration and converts one source file.
func runConvert(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: expected at most one source file, got %d", ErrUsage, len(args))
	}

	envCfg := loadEnvConfig(env.Getenv)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg, err := loadConfig(cmp.Or(flags.common.config, envCfg.ConfigPath))
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	source := resolveSource(args, cfg)
	if !flags.common.quiet {
		printBanner(env.Stdout, source)
	}
	if !fileutil.FileExists(source) {
		candidates, _ := fileutil.ListByExt(filepath.Dir(source), ".md")
		return fmt.Errorf("%w: %s%s", md2html.ErrSourceNotFound, source, hints.ForSourceNotFound(candidates))
	}

	output, err := resolveOutput(source, flags.output, cfg.Output.Dir)
	if err != nil {
		return err
	}

	extraCSS, err := readExtraCSS(cfg.Style.CSSFile)
	if err != nil {
		return err
	}

	conv, err := md2html.NewConverter(converterOptions(cfg, timeout)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	input := md2html.Input{
		Title: cfg.Document.Title,
		Date:  cfg.ResolveDate(env.Now()),
		CSS:   extraCSS,
		PDF:   pdfOptions(cfg),
	}
	res, err := conv.ConvertFile(ctx, source, output, input)
	if err != nil {
		return err
	}

	printResult(env, res, flags.common)
	if !flags.common.quiet && input.PDF == nil && env.IsTerminal() {
		printGuide(env.Stdout)
	}
	return nil
}

// loadConfig loads nameOrPath, or returns the defaults when it is empty.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		var searched []string
		if !fileutil.IsFilePath(nameOrPath) {
			searched = config.SearchPaths(nameOrPath)
		}
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags copies set flags over config values. CLI values win.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.tocTitle != "" {
		cfg.TOC.Title = flags.tocTitle
	}

	if flags.style.style != "" {
		cfg.Style.Name = flags.style.style
	}
	if flags.style.css != "" {
		cfg.Style.CSSFile = flags.style.css
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}

	if flags.code.highlight {
		cfg.Code.Highlight = true
	}
	if flags.code.theme != "" {
		cfg.Code.Theme = flags.code.theme
		cfg.Code.Highlight = true
	}

	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.size != "" {
		cfg.PDF.Page.Size = flags.pdf.size
	}
	if flags.pdf.orientation != "" {
		cfg.PDF.Page.Orientation = flags.pdf.orientation
	}
	if flags.pdf.margin != 0 {
		cfg.PDF.Page.Margin = flags.pdf.margin
	}
	if flags.pdf.footerText != "" {
		cfg.PDF.Footer.Text = flags.pdf.footerText
		cfg.PDF.Footer.Enabled = true
	}
	if flags.pdf.footerPosition != "" {
		cfg.PDF.Footer.Position = flags.pdf.footerPosition
	}
	if flags.pdf.footerPageNumber {
		cfg.PDF.Footer.PageNumber = true
		cfg.PDF.Footer.Enabled = true
	}
}

// resolveTimeout parses the --timeout flag, falling back to the environment.
// Zero means the library default.
func resolveTimeout(flagValue string, fromEnv time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return fromEnv, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveSource picks the source argument, the configured default, or
// defaultSource, and appends .md when it has no extension.
func resolveSource(args []string, cfg *config.Config) string {
	source := cmp.Or(cfg.Input.Default, defaultSource)
	if len(args) == 1 {
		source = args[0]
	}
	source = fileutil.EnsureExt(source, ".md")
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	return source
}

// resolveOutput returns the HTML destination. An --output ending in .html or
// .htm is a file; any other value, like the configured directory, is a
// directory created on demand. Empty means next to the source.
func resolveOutput(source, flagOutput, cfgDir string) (string, error) {
	dir := cfgDir
	if flagOutput != "" {
		switch strings.ToLower(filepath.Ext(flagOutput)) {
		case ".html", ".htm":
			return flagOutput, nil
		}
		dir = flagOutput
	}
	if dir == "" {
		return "", nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("%w: %w", md2html.ErrDestinationUnwritable, err)
	}
	return filepath.Join(dir, fileutil.ReplaceExt(filepath.Base(source), ".html")), nil
}

func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected CSS
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(data), nil
}

// converterOptions maps config onto library options.
func converterOptions(cfg *config.Config, timeout time.Duration) []md2html.Option {
	var opts []md2html.Option
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}
	if cfg.Style.Name != "" {
		opts = append(opts, md2html.WithStyle(cfg.Style.Name))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Code.Highlight {
		opts = append(opts, md2html.WithHighlighting(cfg.Code.Theme))
	}
	if cfg.Document.Lang != "" {
		opts = append(opts, md2html.WithLang(cfg.Document.Lang))
	}
	if cfg.TOC.Title != "" {
		opts = append(opts, md2html.WithTOCTitle(cfg.TOC.Title))
	}
	return opts
}

// pdfOptions returns nil unless PDF export is enabled. Unset page fields
// take the library defaults.
func pdfOptions(cfg *config.Config) *md2html.PDFOptions {
	if !cfg.PDF.Enabled {
		return nil
	}

	def := md2html.DefaultPageSettings()
	opts := &md2html.PDFOptions{
		Page: &md2html.PageSettings{
			Size:        cmp.Or(cfg.PDF.Page.Size, def.Size),
			Orientation: cmp.Or(cfg.PDF.Page.Orientation, def.Orientation),
			Margin:      cmp.Or(cfg.PDF.Page.Margin, def.Margin),
		},
	}
	if f := cfg.PDF.Footer; f.Enabled {
		opts.Footer = &md2html.Footer{
			Position:       f.Position,
			ShowPageNumber: f.PageNumber,
			Text:           f.Text,
		}
	}
	return opts
}

// printResult reports the written files.
func printResult(env *Environment, res *md2html.FileResult, common commonFlags) {
	if common.quiet {
		return
	}
	fmt.Fprintln(env.Stdout)
	if common.verbose {
		fmt.Fprintf(env.Stdout, "Created %s (%v)\n", res.HTMLPath, res.Duration.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.HTMLPath)
	}
	if res.PDFPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.PDFPath)
	}
	fmt.Fprintln(env.Stdout, "Conversion complete.")
}

// hintFor returns a follow-up hint for errors that have one.
// Source and config hints are attached where those errors are built.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2html.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2html.ErrDestinationUnwritable):
		return hints.ForDestination()
	case errors.Is(err, md2html.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, md2html.ErrInvalidTheme):
		return hints.ForTheme()
	}
	return ""
}
