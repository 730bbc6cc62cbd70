// Command csranging is an interactive demo of the channel sounding distance
// measurement stack. It wires the ranging manager against a simulated
// controller, ranging HAL and Ranging Service peer set, so the full
// negotiation and measurement loop can be driven from a prompt.
//
// Usage:
//
//	csranging [flags]
//
// Flags:
//
//	-config string     Configuration file path (YAML)
//	-log-level string  Log level: debug, info, warn, error (overrides config)
//	-log-file string   CBOR event log path (overrides config)
//	-interval int      Default measurement interval in ms (overrides config)
//
// Examples:
//
//	# Start with the built-in peer set
//	csranging
//
//	# Verbose logging plus a CBOR event log
//	csranging -log-level debug -log-file /tmp/ranging.cbor
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/config"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/hci/hcifake"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/rangelog"
	"github.com/Neoteric-OS/android-packages-modules-Bluetooth/pkg/ranging"
)

var (
	configFile = flag.String("config", "", "Configuration file path (YAML)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile    = flag.String("log-file", "", "CBOR event log path")
	intervalMs = flag.Int("interval", 0, "Default measurement interval in ms")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "csranging: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *intervalMs > 0 {
		cfg.DefaultIntervalMs = *intervalMs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)

	loggers := []rangelog.Logger{rangelog.NewSlogAdapter(slog.Default())}
	if cfg.LogFile != "" {
		fileLogger, err := rangelog.NewFileLogger(cfg.LogFile)
		if err != nil {
			return err
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}

	peers := make([]simPeer, 0, len(cfg.Peers))
	for _, p := range cfg.Peers {
		peers = append(peers, simPeer{
			address:          hci.MustParseAddress(p.Address),
			connectionHandle: p.ConnectionHandle,
			connInterval:     p.ConnIntervalUnits,
			supportsRanging:  p.SupportsRanging,
		})
	}

	channel := hcifake.New()
	controller := newSimController(channel, peers)
	accelerator := newSimHal()

	manager, err := ranging.NewManager(ranging.Deps{
		Commands:   channel,
		Controller: simulatedController{},
		Hal:        accelerator,
		Logger:     rangelog.NewMultiLogger(loggers...),
	})
	if err != nil {
		return err
	}
	manager.Start()
	defer manager.Close()

	controller.ras = manager

	cons, err := newConsole(manager, peers, cfg.DefaultInterval())
	if err != nil {
		return err
	}
	manager.RegisterDistanceMeasurementCallbacks(cons)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go controller.Run(ctx)
	cons.Run(ctx, cancel)
	return nil
}

func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
