package main

import (
	"bufio"
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/log-roller/internal/config"
	"github.com/raoulx24/log-roller/internal/fs"
	"github.com/raoulx24/log-roller/internal/logfile"
	"github.com/raoulx24/log-roller/internal/logging"
	"github.com/raoulx24/log-roller/internal/retention"
	"github.com/raoulx24/log-roller/internal/roller"
	"github.com/raoulx24/log-roller/internal/serial"
)

// log-roller reads lines from stdin and appends them to a rolling log file
// set, rolling on size or age and pruning archived files past the limit.

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("shutting down...")
		cancel()
	}()

	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("config: %v; continuing with defaults", err)
		cfg = config.Default()
	}

	logg, err := logging.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logg.Sync()

	dir := cfg.Logs.Directory
	if dir == "" {
		dir = "logs"
	}
	if err := fs.MkdirAll(dir); err != nil {
		log.Fatalf("failed to create logs directory: %v", err)
	}

	// Processing queue shared by the roller and the retention manager
	q := serial.New(logg)
	defer q.Close()

	marker := logfile.SelectMarker(cfg.Logs.ArchiveMarker, dir, logg)

	ret := retention.New(dir, cfg.Retention.MaximumNumberOfLogFiles, marker, q, logg)
	ret.SetHooks(retention.Hooks{
		DidRollAndArchiveLogFile: func(path string) {
			logg.Info("rolled and archived", "file", path)
		},
	})
	if err := ret.StartSchedule(cfg.Retention.Schedule); err != nil {
		log.Fatalf("invalid retention schedule: %v", err)
	}
	defer ret.StopSchedule()

	r := roller.New(q, ret, cfg.Logs.MaximumFileSize, cfg.Logs.RollingFrequency.Std(), logg)
	defer r.Close()

	// Hot reload on SIGHUP, plus fsnotify when configured
	go reloadOnSighup(cfgPath, r, ret, logg)
	if cfg.ConfigReload.Enabled && cfg.ConfigReload.Method == "fsnotify" {
		go watchConfig(ctx, cfgPath, r, ret, logg)
	}

	// Producer: stdin lines become log messages
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			r.Log(roller.Message{Text: sc.Text(), Time: time.Now()})
		}
		cancel()
	}()

	<-ctx.Done()
	log.Println("exit complete")
}

// reload applies a fresh config through the synchronized setters, so
// changes take effect on the processing queue.
func reload(cfgPath string, r *roller.Roller, ret *retention.Manager, logg logging.Logger) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logg.Error("config reload failed", "error", err)
		return
	}

	r.SetMaximumFileSize(cfg.Logs.MaximumFileSize)
	r.SetRollingFrequency(cfg.Logs.RollingFrequency.Std())
	ret.SetMaximumNumberOfLogFiles(cfg.Retention.MaximumNumberOfLogFiles)

	logg.Info("config reloaded", "path", cfgPath)
}

func reloadOnSighup(cfgPath string, r *roller.Roller, ret *retention.Manager, logg logging.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	for range sigCh {
		reload(cfgPath, r, ret, logg)
	}
}

// watchConfig reloads when the config file changes on disk. Editors often
// replace the file, so the parent directory is watched and events filtered
// by name.
func watchConfig(ctx context.Context, cfgPath string, r *roller.Roller, ret *retention.Manager, logg logging.Logger) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logg.Error("fsnotify unavailable", "error", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(cfgPath)); err != nil {
		logg.Error("cannot watch config directory", "error", err)
		return
	}

	base := filepath.Base(cfgPath)
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				reload(cfgPath, r, ret, logg)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logg.Error("fsnotify error", "error", err)
		}
	}
}
