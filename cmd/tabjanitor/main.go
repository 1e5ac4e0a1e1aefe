// Command tabjanitor closes unwanted browser tabs via the remote debugging
// HTTP endpoint: empty/failed pages, CI-system pages, and tabs matching
// user-configured site rules.
//
// Note that in the default and --jenkins-only modes every tab on a CI
// domain is closed, not just console logs and finished builds. Run with
// --dry-run first if that is not what you want.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dgnsrekt/tab_janitor/internal/browser"
	"github.com/dgnsrekt/tab_janitor/internal/config"
	"github.com/dgnsrekt/tab_janitor/internal/devtools"
	"github.com/dgnsrekt/tab_janitor/internal/history"
	"github.com/dgnsrekt/tab_janitor/internal/notify"
	"github.com/dgnsrekt/tab_janitor/internal/rules"
	"github.com/dgnsrekt/tab_janitor/internal/sweep"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "show what tabs would be closed without closing them")
	emptyOnly := flag.Bool("empty-only", false, "only close empty/failed pages")
	jenkinsOnly := flag.Bool("jenkins-only", false, "only close CI-system tabs (closes ALL tabs on CI domains)")
	sitesOnly := flag.Bool("sites-only", false, "only close tabs matching configured site rules")
	sitesFile := flag.String("sites", "", "path to the site rules file (overrides TABJANITOR_SITES_FILE)")
	launch := flag.Bool("launch", false, "launch a browser with remote debugging if none is running")
	logLevel := flag.String("log-level", "", "log level: debug|info|warn|error (overrides TABJANITOR_LOG_LEVEL)")
	flag.Parse()

	mode, err := selectMode(*emptyOnly, *jenkinsOnly, *sitesOnly)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *sitesFile, *logLevel)

	if err := setupLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = io.WriteString(os.Stderr, "logger setup failed: "+err.Error()+"\n")
		os.Exit(1)
	}

	slog.Info("tab janitor starting",
		"cdp_url", cfg.DevToolsURL(),
		"mode", mode,
		"dry_run", *dryRun,
		"sites_file", cfg.SitesFile,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, mode, *dryRun, *launch); err != nil {
		slog.Error("sweep failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error connecting to the browser. Make sure it is running with --remote-debugging-port=%d\n", cfg.CDPPort)
		fmt.Fprintf(os.Stderr, "Error details: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, mode sweep.Mode, dryRun, launch bool) error {
	if launch {
		l := browser.NewLauncher(browser.Config{
			CDPAddress: cfg.CDPAddress,
			CDPPort:    cfg.CDPPort,
		})
		if err := l.EnsureRunning(ctx); err != nil {
			return fmt.Errorf("launch browser: %w", err)
		}
	}

	timeout := time.Duration(cfg.HTTPTimeoutMS) * time.Millisecond
	client := devtools.NewClient(cfg.DevToolsURL(), timeout)

	if v, err := client.BrowserVersion(ctx); err == nil {
		slog.Debug("browser identified", "browser", v.Browser, "protocol", v.ProtocolVersion)
	}

	var hist *history.Writer
	if cfg.DataDir != "" {
		var err error
		hist, err = history.NewWriter(cfg.DataDir)
		if err != nil {
			slog.Warn("sweep history disabled", "error", err)
		} else {
			defer func() { _ = hist.Close() }()
		}
	}

	runner := sweep.NewRunner(client, os.Stdout, hist, sweep.Options{
		Mode:       mode,
		DryRun:     dryRun,
		CloseDelay: time.Duration(cfg.CloseDelayMS) * time.Millisecond,
		Rules:      rules.Load(cfg.SitesFile),
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.NTFYEndpoint != "" && !summary.DryRun {
		if err := notify.Send(ctx, http.DefaultClient, cfg.NTFYEndpoint, summary.Line()); err != nil {
			slog.Warn("failed to send sweep notification", "error", err)
		}
	}
	return nil
}

// applyFlagOverrides lets CLI flags win over their env counterparts.
func applyFlagOverrides(cfg *config.Config, sitesFile, logLevel string) {
	if sitesFile != "" {
		cfg.SitesFile = sitesFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// selectMode maps the mutually-exclusive mode flags to a sweep mode.
func selectMode(emptyOnly, jenkinsOnly, sitesOnly bool) (sweep.Mode, error) {
	set := 0
	for _, b := range []bool{emptyOnly, jenkinsOnly, sitesOnly} {
		if b {
			set++
		}
	}
	if set > 1 {
		return "", fmt.Errorf("at most one of --empty-only, --jenkins-only, --sites-only may be given")
	}
	switch {
	case emptyOnly:
		return sweep.ModeEmptyOnly, nil
	case jenkinsOnly:
		return sweep.ModeCIOnly, nil
	case sitesOnly:
		return sweep.ModeSitesOnly, nil
	default:
		return sweep.ModeAll, nil
	}
}

func setupLogger(level, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    25,
		MaxBackups: 10,
		MaxAge:     14,
		Compress:   true,
	}

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	h := slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: slogLevel})
	slog.SetDefault(slog.New(h))
	return nil
}
