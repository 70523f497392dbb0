package main // Entry point package

import (
	"context"
	"fmt"
	"io"
	"log" // Logging library
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/iliyamo/cinema-hall-console/internal/config"     // Internal config loader
	"github.com/iliyamo/cinema-hall-console/internal/menu"       // Interactive session
	"github.com/iliyamo/cinema-hall-console/internal/render"     // Seat grid renderer
	"github.com/iliyamo/cinema-hall-console/internal/repository" // Hall stores
	queue_publisher "github.com/iliyamo/cinema-hall-console/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err) // Startup failures always go to stderr
	}
}

func run() error {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer func() { _ = store.Close() }()

	// A corrupt snapshot stops startup; carrying on with an empty
	// collection would overwrite it on the first save.
	halls, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load halls: %w", err)
	}
	logLoaded(logger, cfg, halls.Len())

	fd := os.Stdout.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	useColor := cfg.Color == config.ColorAlways || (cfg.Color == config.ColorAuto && tty)

	c := menu.New(menu.Deps{
		Halls:       halls,
		Store:       store,
		Events:      queue_publisher.New(cfg.RabbitURL, cfg.EventsQueue, logger),
		Renderer:    render.New(useColor),
		Logger:      logger,
		In:          os.Stdin,
		Out:         colorable.NewColorableStdout(), // ANSI colours on Windows consoles too
		ClearScreen: tty,
	})
	return c.Run(ctx)
}

// logLoaded records the startup snapshot size.  Only a log file gets it;
// stderr shares the console with the menu.
func logLoaded(logger *log.Logger, cfg config.Config, n int) {
	if cfg.LogFile == "" {
		return
	}
	logger.Printf("loaded %d halls (store=%s)", n, cfg.Store)
}

// newLogger writes to stderr, or appends to path when it is set.
func newLogger(path string) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return log.New(w, "cinema: ", log.LstdFlags), closeFn, nil
}
