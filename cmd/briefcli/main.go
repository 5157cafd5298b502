package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dailycoach/internal/engine"
	"dailycoach/internal/export"
	"dailycoach/internal/i18n"
	"dailycoach/internal/notify"
	"dailycoach/internal/platform/logger"
	"dailycoach/internal/snapshot"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "Путь к файлу снимка (.yaml, .yml или .json)")
	watch := flag.Bool("watch", false, "Пересчитывать сводку при каждом изменении файла")
	xlsxPath := flag.String("xlsx", "", "Сохранить сводку в Excel файл")
	format := flag.String("format", "text", "Формат вывода: text или json")
	lang := flag.String("lang", "en", "Язык текста: en или ru")
	flag.Parse()

	if *snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "usage: briefcli -snapshot day.yaml [-watch] [-xlsx out.xlsx] [-format text|json] [-lang en|ru]")
		os.Exit(2)
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(os.Stderr, "unknown format %q\n", *format)
		os.Exit(2)
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	p := printer{
		format:  *format,
		lang:    i18n.ParseLanguage(*lang),
		xlsx:    *xlsxPath,
		catalog: i18n.Default(),
		alerts:  engine.NewAlertEngine(),
		log:     log,
	}

	err = run(*snapshotPath, *watch, p, log)
	log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "briefcli: %v\n", err)
		os.Exit(1)
	}
}

// run prints one briefing, or keeps printing on every change of the file in watch mode
func run(path string, watch bool, p printer, log *logger.Logger) error {
	if !watch {
		snap, err := snapshot.Load(path)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if err := p.print(snap); err != nil {
			return fmt.Errorf("print briefing: %w", err)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := snapshot.NewWatcher(path, snapshot.DefaultDebounce, log)
	log.Info("watching snapshot", "path", path)
	err := w.Watch(ctx, func(snap engine.Snapshot) {
		if err := p.print(snap); err != nil {
			log.Error("print briefing", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch snapshot: %w", err)
	}
	return nil
}

type printer struct {
	format  string
	lang    i18n.Language
	xlsx    string
	catalog *i18n.Catalog
	alerts  *engine.AlertEngine
	log     *logger.Logger
}

func (p printer) print(snap engine.Snapshot) error {
	b := engine.BuildBriefing(snap, p.alerts)
	for _, adj := range b.Adjustments {
		p.log.Warn("input clamped", "field", adj.Field, "from", adj.From, "to", adj.To)
	}

	switch p.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return err
		}
	default:
		fmt.Println(notify.FormatBriefing(p.catalog, p.lang, snap.Profile.Name, b))
	}

	if p.xlsx != "" {
		if err := export.SaveBriefing(p.xlsx, b, p.catalog, p.lang); err != nil {
			return err
		}
		p.log.Info("briefing exported", "path", p.xlsx)
	}
	return nil
}
