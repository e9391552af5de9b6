package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TacticBoard/internal/config"
	"TacticBoard/internal/editor"
	"TacticBoard/internal/exchange"
	"TacticBoard/internal/export"
	"TacticBoard/internal/logger"
	"TacticBoard/internal/playback"
	"TacticBoard/internal/state"

	"github.com/sirupsen/logrus"
)

var version = "dev"

var errNothingToPlay = errors.New("no animation to play")

type options struct {
	tacticPath string
	exportPath string
	step       float64
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	tacticPath := flag.String("tactic", "", "exported session, tactic or backup JSON to open (default: demo animation)")
	exportPath := flag.String("export", "", "write the active animation's storyboard PDF here and exit")
	step := flag.Float64("step", export.DefaultStep, "storyboard sampling interval in seconds")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tacticboard: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := options{tacticPath: *tacticPath, exportPath: *exportPath, step: *step}
	if err := run(ctx, cfg, opts, log); err != nil {
		log.WithError(err).Fatal("tacticboard failed")
	}
}

func run(ctx context.Context, cfg config.Config, opts options, log logrus.FieldLogger) error {
	sched := playback.NewTickerScheduler(cfg.Playback.FPS)
	defer sched.Stop()

	ed := editor.New(cfg, sched, log)
	defer ed.Close()

	if err := open(ed, opts.tacticPath); err != nil {
		return err
	}

	if opts.exportPath != "" {
		return writeStoryboard(ed, opts, log)
	}
	return play(ctx, ed, log)
}

func open(ed *editor.Editor, path string) error {
	if path == "" {
		ed.SeedDemo()
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tactic: %w", err)
	}
	defer f.Close()

	payload, err := exchange.Decode(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	tactic, ok := payload.PrimaryTactic()
	if !ok {
		return fmt.Errorf("read %s: %s payload holds no tactic", path, payload.Type)
	}
	ed.LoadTactic(&tactic)
	return nil
}

func writeStoryboard(ed *editor.Editor, opts options, log logrus.FieldLogger) error {
	a, ok := ed.Library().Active()
	if !ok {
		return errNothingToPlay
	}

	f, err := os.Create(opts.exportPath)
	if err != nil {
		return fmt.Errorf("create storyboard: %w", err)
	}
	cfg := ed.Config()
	err = export.WriteStoryboard(f, a, export.Options{
		Step:        opts.step,
		BoardWidth:  cfg.Board.Width,
		BoardHeight: cfg.Board.Height,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"animation": a.ID, "path": opts.exportPath}).Info("storyboard written")
	return nil
}

// play runs the active animation until it ends or ctx is cancelled.
func play(ctx context.Context, ed *editor.Editor, log logrus.FieldLogger) error {
	done := make(chan struct{}, 1)
	unsubscribe := ed.Board().Subscribe(func(c state.Change) {
		if c.Source != state.SourcePlayback {
			return
		}
		clock := ed.Clock()
		log.WithFields(logrus.Fields{
			"cursor":   clock.Cursor(),
			"revision": c.Revision,
		}).Debug("frame")
		if clock.State() == playback.StateStopped {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	if !ed.Clock().Play() {
		return errNothingToPlay
	}

	select {
	case <-ctx.Done():
		ed.Clock().Pause()
		log.Info("interrupted")
	case <-done:
	}
	return nil
}
