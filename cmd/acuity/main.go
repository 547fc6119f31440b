package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/openacuity/acuity/internal/audit"
	"github.com/openacuity/acuity/internal/config"
	"github.com/openacuity/acuity/internal/engine"
	"github.com/openacuity/acuity/internal/logger"
	"github.com/openacuity/acuity/internal/watcher"
)

func main() {
	format := flag.String("format", "markdown", "output format (markdown, json)")
	threshold := flag.Int("threshold", 0, "exit non-zero when any score falls below this value")
	watch := flag.Bool("watch", false, "keep watching the audited files and re-audit on change")
	fg := flag.String("fg", "", "foreground color for a one-off contrast check")
	bg := flag.String("bg", "", "background color for a one-off contrast check")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: acuity [flags] <file.html ...>\n")
		fmt.Fprintf(os.Stderr, "       acuity -fg '#777777' -bg '#ffffff'\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Init(logger.Config{
		Level:  logger.ParseLevel(*logLevel),
		Format: "text",
		Output: os.Stderr,
	})

	if err := run(*format, *threshold, *watch, *fg, *bg, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "acuity: %v\n", err)
		os.Exit(1)
	}
}

func run(format string, threshold int, watch bool, fg, bg string, files []string) error {
	if format != "markdown" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	cfg := config.Load()
	cfg.PrefsDBPath = filepath.Join(os.TempDir(), fmt.Sprintf("acuity-cli-%d.db", os.Getpid()))
	defer os.Remove(cfg.PrefsDBPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := engine.New(cfg, engine.Options{})
	if err != nil {
		return err
	}
	if err := eng.Init(ctx); err != nil {
		return err
	}
	defer eng.Dispose()

	if fg != "" || bg != "" {
		return checkContrast(eng, fg, bg)
	}

	if len(files) == 0 {
		flag.Usage()
		return fmt.Errorf("no files to audit")
	}

	belowThreshold := false
	for _, path := range files {
		report, err := eng.AuditFile(path)
		if err != nil {
			return err
		}
		if err := emit(eng, format, path, report); err != nil {
			return err
		}
		if report.Score < threshold {
			belowThreshold = true
		}
	}

	if watch {
		if err := watchFiles(ctx, eng, cfg, format, files); err != nil {
			return err
		}
	}

	if belowThreshold {
		return fmt.Errorf("score below threshold %d", threshold)
	}
	return nil
}

func checkContrast(eng *engine.Engine, fg, bg string) error {
	if fg == "" || bg == "" {
		return fmt.Errorf("contrast check needs both -fg and -bg")
	}

	result, err := eng.CheckContrastHex(fg, bg)
	if err != nil {
		return err
	}

	fmt.Printf("ratio: %.2f:1\nlevel: %s\npasses: %v\n", result.Ratio, result.Level, result.Passes)
	if !result.Passes {
		return fmt.Errorf("contrast fails WCAG AA")
	}
	return nil
}

func emit(eng *engine.Engine, format, path string, report *audit.Report) error {
	fmt.Printf("== %s\n", path)

	if format == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(eng.GenerateReport(report))
	return nil
}

func watchFiles(ctx context.Context, eng *engine.Engine, cfg *config.Config, format string, files []string) error {
	w, err := watcher.New(cfg.Watcher)
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	roots := make(map[string]bool)
	for _, path := range files {
		roots[filepath.Dir(path)] = true
	}
	for root := range roots {
		if err := w.AddRoot(root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	cancelSub := w.Subscribe(func(changes []watcher.Change) {
		for _, change := range changes {
			if change.Type == watcher.ChangeDelete {
				continue
			}
			report, err := eng.AuditFile(change.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "acuity: %v\n", err)
				continue
			}
			emit(eng, format, change.Path, report)
		}
	})
	defer cancelSub()

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(os.Stderr, "watching for changes, press Ctrl-C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}
