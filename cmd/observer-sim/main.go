// Command observer-sim drives a telephony observer registry from a console
// or from recorded notification streams.
//
// The simulator wires a registry to an in-memory activation gateway, so
// subscriptions, activation failures and notification fan-out can be
// exercised without a modem.
//
// Usage:
//
//	observer-sim [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-slots int            Number of SIM slots (overrides config)
//	-default-slot int     Slot used when a command omits one (overrides config)
//	-log-level string     Log level: debug, info, warn, error (overrides config)
//	-trace string         Write registry trace events to this .otrace file
//	-trace-console        Also print trace events through the logger
//	-replay string        Replay a .ocap recording or .yaml scenario at startup
//	-speed float          Pace replay by frame offsets at this speed (0 = no pacing)
//	-interactive          Start the interactive console (default true)
//
// Examples:
//
//	# Interactive console with two slots
//	observer-sim
//
//	# Replay a scenario once, tracing to a file
//	observer-sim -interactive=false -replay boot.yaml -trace boot.otrace
//
//	# Start with a config file that injects activation failures
//	observer-sim -config sim.yaml -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/telephony-observer/observer-go/cmd/observer-sim/interactive"
	"github.com/telephony-observer/observer-go/pkg/config"
	"github.com/telephony-observer/observer-go/pkg/gateway"
	obslog "github.com/telephony-observer/observer-go/pkg/log"
	"github.com/telephony-observer/observer-go/pkg/observer"
	"github.com/telephony-observer/observer-go/pkg/source"
)

// Flags holds the command line settings.
type Flags struct {
	ConfigFile   string
	SlotCount    int
	DefaultSlot  int
	LogLevel     string
	TraceFile    string
	TraceConsole bool
	ReplayFile   string
	Speed        float64
	Interactive  bool
}

var flags Flags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path (YAML)")
	flag.IntVar(&flags.SlotCount, "slots", int(gateway.DefaultSlotCount), "Number of SIM slots")
	flag.IntVar(&flags.DefaultSlot, "default-slot", 0, "Slot used when a command omits one")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&flags.TraceFile, "trace", "", "Write registry trace events to this .otrace file")
	flag.BoolVar(&flags.TraceConsole, "trace-console", false, "Also print trace events through the logger")
	flag.StringVar(&flags.ReplayFile, "replay", "", "Replay a .ocap recording or .yaml scenario at startup")
	flag.Float64Var(&flags.Speed, "speed", 0, "Pace replay by frame offsets at this speed (0 = no pacing)")
	flag.BoolVar(&flags.Interactive, "interactive", true, "Start the interactive console")
}

func main() {
	flag.Parse()

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !flags.Interactive && flags.ReplayFile == "" {
		log.Fatal("Nothing to do: use -interactive or -replay")
	}

	setupLogging(cfg.Level())
	logger := slog.Default()

	log.Println("Telephony Observer Simulator")
	log.Println("============================")

	// Gateway with configured activation failures
	state := gateway.NewMemoryStateManager()
	failures, _ := cfg.ActivationFailures()
	for et, status := range failures {
		state.FailAdd(et.Mask(), status)
		log.Printf("Activation of %s will fail with %s", et, gateway.StatusName(status))
	}
	gw := gateway.NewSlotGateway(state, gateway.Config{SlotCount: cfg.SlotCount, Logger: logger})
	log.Printf("Slots: %d", gw.SlotCount())
	log.Printf("Default slot: %d", cfg.DefaultSlot)

	// Trace output
	trace, fileLogger, err := setupTrace(cfg.TraceFile, flags.TraceConsole, logger)
	if err != nil {
		log.Fatalf("Failed to open trace file: %v", err)
	}
	if fileLogger != nil {
		defer func() {
			log.Printf("Wrote %d trace event(s) to %s", fileLogger.Written(), fileLogger.Path())
			if err := fileLogger.Close(); err != nil {
				log.Printf("Error closing trace file: %v", err)
			}
		}()
	}

	reg := observer.NewRegistryWithConfig(gw, observer.Config{
		Logger:      logger,
		TraceLogger: trace,
	})
	log.Printf("Registry: %s", reg.ID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if flags.ReplayFile != "" {
		replayCfg := source.ReplayConfig{Pace: flags.Speed > 0, Speed: flags.Speed, SkipInvalid: true}
		n, err := interactive.ReplayFile(ctx, flags.ReplayFile, reg, replayCfg)
		log.Printf("Replayed %d notification(s) from %s", n, flags.ReplayFile)
		if err != nil {
			log.Printf("Replay stopped: %v", err)
		}
	}

	if flags.Interactive {
		ic, err := interactive.New(reg, state, interactive.ConsoleConfig{DefaultSlot: cfg.DefaultSlot})
		if err != nil {
			log.Fatalf("Failed to create interactive console: %v", err)
		}
		// Redirect log output through readline to avoid interfering with input
		log.SetOutput(ic.Stdout())
		ic.Run(ctx, cancel)
	}

	log.Println("Goodbye!")
}

// resolveConfig loads the config file and applies flags given on the
// command line on top of it.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if flags.ConfigFile != "" {
		loaded, err := config.Load(flags.ConfigFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "slots":
			cfg.SlotCount = int32(flags.SlotCount)
		case "default-slot":
			cfg.DefaultSlot = int32(flags.DefaultSlot)
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "trace":
			cfg.TraceFile = flags.TraceFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if flags.Speed < 0 {
		return cfg, fmt.Errorf("speed must not be negative, got %v", flags.Speed)
	}
	return cfg, nil
}

// setupLogging routes slog through the standard logger so that both follow
// log.SetOutput.
func setupLogging(level slog.Level) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if level <= slog.LevelDebug {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}
	slog.SetLogLoggerLevel(level)
}

// setupTrace builds the registry trace logger. It returns nil when tracing
// is off, and the file logger separately so the caller can close it.
func setupTrace(path string, console bool, logger *slog.Logger) (obslog.Logger, *obslog.FileLogger, error) {
	var (
		fl      *obslog.FileLogger
		loggers []obslog.Logger
	)
	if path != "" {
		var err error
		fl, err = obslog.NewFileLogger(path)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		log.Printf("Tracing to %s", path)
	}
	if console {
		loggers = append(loggers, obslog.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return nil, nil, nil
	case 1:
		return loggers[0], fl, nil
	default:
		return obslog.NewMultiLogger(loggers...), fl, nil
	}
}
