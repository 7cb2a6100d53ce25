package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envConfig holds configuration from MD2HTML_* environment variables.
type envConfig struct {
	ConfigPath string        // MD2HTML_CONFIG
	Style      string        // MD2HTML_STYLE
	Timeout    time.Duration // MD2HTML_TIMEOUT
	Lang       string        // MD2HTML_LANG
	Input      string        // MD2HTML_INPUT
	OutputDir  string        // MD2HTML_OUTPUT_DIR
	PageSize   string        // MD2HTML_PAGE_SIZE
}

// knownEnvVars lists valid MD2HTML_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":     true,
	"MD2HTML_STYLE":      true,
	"MD2HTML_TIMEOUT":    true,
	"MD2HTML_LANG":       true,
	"MD2HTML_INPUT":      true,
	"MD2HTML_OUTPUT_DIR": true,
	"MD2HTML_PAGE_SIZE":  true,
}

// loadEnvConfig reads MD2HTML_* values through getenv.
// An unparsable or non-positive timeout is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2HTML_CONFIG"),
		Style:      getenv("MD2HTML_STYLE"),
		Lang:       getenv("MD2HTML_LANG"),
		Input:      getenv("MD2HTML_INPUT"),
		OutputDir:  getenv("MD2HTML_OUTPUT_DIR"),
		PageSize:   getenv("MD2HTML_PAGE_SIZE"),
	}
	if timeout := getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// warnUnknownEnvVars reports MD2HTML_* variables that are likely typos.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, "MD2HTML_") {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills empty config fields from the environment.
// Precedence: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style.Name == "" {
		cfg.Style.Name = env.Style
	}
	if env.Lang != "" && cfg.Document.Lang == "" {
		cfg.Document.Lang = env.Lang
	}
	if env.Input != "" && cfg.Input.Default == "" {
		cfg.Input.Default = env.Input
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.PageSize != "" && cfg.PDF.Page.Size == "" {
		cfg.PDF.Page.Size = env.PageSize
	}
}
