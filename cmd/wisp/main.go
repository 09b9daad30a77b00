package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/crimson-sun/wisp/internal/client"
	"github.com/crimson-sun/wisp/internal/config"
	"github.com/crimson-sun/wisp/internal/logging"
	"github.com/crimson-sun/wisp/internal/render"
	"github.com/crimson-sun/wisp/internal/render/async"
	"github.com/crimson-sun/wisp/internal/render/file"
	"github.com/crimson-sun/wisp/internal/render/multi"
	"github.com/crimson-sun/wisp/internal/render/stdout"
	"github.com/crimson-sun/wisp/internal/render/tui"
	"github.com/crimson-sun/wisp/internal/render/webhook"
	"github.com/crimson-sun/wisp/internal/streamlog"
	"github.com/crimson-sun/wisp/internal/transport"

	// Register transport implementations.
	_ "github.com/crimson-sun/wisp/internal/transport/sse"
	_ "github.com/crimson-sun/wisp/internal/transport/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (env vars used when empty)")
	endpoint := flag.String("endpoint", "", "stream endpoint URL (overrides config)")
	flag.Parse()

	// Load configuration.
	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	} else {
		cfg = config.Load()
	}
	if *endpoint != "" {
		cfg.Endpoint = *endpoint
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Slog stays on stderr; structured when stdout carries NDJSON or a
	// TUI owns the terminal.
	structured := cfg.Renderer.Mode != "text"
	logging.Init(structured, logging.ParseLevel(cfg.LogLevel))

	// Resolve transport.
	dialer, err := transport.Resolve(cfg.Endpoint)
	if err != nil {
		log.Fatalf("failed to resolve endpoint: %v", err)
	}

	if cfg.Renderer.Mode == "tui" {
		runTUI(cfg, dialer)
		return
	}
	runPlain(cfg, dialer)
}

// runPlain streams to stdout as text lines or NDJSON until interrupted.
func runPlain(cfg config.Config, dialer transport.Dialer) {
	renderer, err := buildRenderer(cfg, nil)
	if err != nil {
		log.Fatalf("failed to build renderer: %v", err)
	}
	defer renderer.Close()

	c := buildClient(cfg, dialer, renderer)

	fmt.Fprintf(os.Stderr, "wisp: streaming from %s\n", cfg.Endpoint)
	c.Open()
	defer c.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	fmt.Fprintf(os.Stderr, "\nreceived %v, shutting down...\n", sig)
}

// runTUI hands the terminal to bubbletea and feeds it through the tui
// renderer until the user quits.
func runTUI(cfg config.Config, dialer transport.Dialer) {
	program := tea.NewProgram(
		tui.NewModel(cfg.Endpoint, cfg.ShowTimestamp, nil),
		tea.WithAltScreen(),
	)

	renderer, err := buildRenderer(cfg, tui.NewRenderer(program))
	if err != nil {
		log.Fatalf("failed to build renderer: %v", err)
	}
	defer renderer.Close()

	c := buildClient(cfg, dialer, renderer)
	c.Open()
	defer c.Close()

	if _, err := program.Run(); err != nil {
		log.Fatalf("display error: %v", err)
	}
}

// buildRenderer assembles the renderer stack: the primary display surface
// plus optional transcript and webhook forwarders. Slow sinks sit behind
// an async stage so they never stall the stream.
func buildRenderer(cfg config.Config, display render.Renderer) (render.Renderer, error) {
	if display == nil {
		opts := []stdout.Option{stdout.WithTimestamps(cfg.ShowTimestamp)}
		if cfg.Renderer.Mode == "ndjson" {
			opts = append(opts, stdout.WithNDJSON())
		}
		display = stdout.New(opts...)
	}

	var slow []render.Renderer
	if cfg.Renderer.TranscriptPath != "" {
		f, err := file.New(cfg.Renderer.TranscriptPath)
		if err != nil {
			return nil, err
		}
		slow = append(slow, f)
	}
	if cfg.Renderer.WebhookURL != "" {
		slow = append(slow, webhook.New(cfg.Renderer.WebhookURL))
	}
	if len(slow) == 0 {
		return display, nil
	}
	return multi.New(display, async.New(multi.New(slow...))), nil
}

func buildClient(cfg config.Config, dialer transport.Dialer, renderer render.Renderer) *client.Client {
	logView, err := streamlog.New(cfg.MaxEntries, renderer)
	if err != nil {
		log.Fatalf("failed to create log: %v", err)
	}
	c, err := client.New(client.Params{
		Dialer:            dialer,
		Log:               logView,
		Renderer:          renderer,
		ReconnectAttempts: cfg.ReconnectAttempts,
		ReconnectDelay:    cfg.ReconnectDelay,
	})
	if err != nil {
		log.Fatalf("failed to create client: %v", err)
	}
	return c
}
