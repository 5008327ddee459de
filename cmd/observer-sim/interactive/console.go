// Package interactive provides the interactive command-line interface
// for the observer simulator.
package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/telephony-observer/observer-go/pkg/gateway"
	"github.com/telephony-observer/observer-go/pkg/observer"
	"github.com/telephony-observer/observer-go/pkg/source"
)

// ConsoleConfig provides settings to the interactive console.
type ConsoleConfig struct {
	// DefaultSlot is used when a command omits slot=.
	DefaultSlot int32
}

// Console handles interactive mode for observer-sim.
type Console struct {
	registry *observer.Registry
	state    *gateway.MemoryStateManager
	config   ConsoleConfig
	rl       *readline.Instance
	out      io.Writer

	ctx context.Context

	mu          sync.Mutex
	subscribers []subscriber

	// Recording
	recorder   *source.Recorder
	recordFile *os.File
}

// subscriber is a console-owned listener.
type subscriber struct {
	id       string
	listener observer.Listener
}

// New creates a new interactive console.
func New(reg *observer.Registry, state *gateway.MemoryStateManager, cfg ConsoleConfig) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "observer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := newConsole(reg, state, cfg, rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(reg *observer.Registry, state *gateway.MemoryStateManager, cfg ConsoleConfig, out io.Writer) *Console {
	return &Console{
		registry: reg,
		state:    state,
		config:   cfg,
		out:      out,
		ctx:      context.Background(),
	}
}

// Stdout returns a writer for stdout that works with readline.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()
	defer c.stopRecording()
	c.ctx = ctx

	fmt.Fprintln(c.out, "Interactive mode. Type 'help' for commands.")
	fmt.Fprintln(c.out)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if c.Execute(line) {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the console should exit.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "on", "sub", "subscribe":
		c.cmdOn(args)
	case "off", "unsub", "unsubscribe":
		c.cmdOff(args)
	case "emit", "notify":
		c.cmdEmit(args)
	case "replay":
		c.cmdReplay(args)
	case "record", "rec":
		c.cmdRecord(args)
	case "list", "ls":
		c.cmdList()
	case "status", "st":
		c.cmdStatus()
	case "fail":
		c.cmdFail(args)
	case "help", "?":
		c.printHelp()
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

// sink returns where emitted notifications go: the recorder while a
// recording is running, the registry otherwise.
func (c *Console) sink() source.Sink {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recorder != nil {
		return c.recorder
	}
	return c.registry
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Commands:
  Subscriptions:
    on <event> [slot]          - Subscribe a console listener
    off <event> [id]           - Remove one listener, or all of the event
    list                       - Show console listeners

  Notifications:
    emit <event> [key=value]   - Deliver a notification (see fields below)
    replay <file> [speed]      - Replay a .ocap recording or .yaml scenario
                                 (speed > 0 paces frames by their offsets)
    record <file>|stop         - Record emitted notifications to a .ocap file

  Gateway:
    status                     - Show registry and gateway state
    fail add <event> <status>  - Fail activation of an event
    fail remove <event> <status> - Fail deactivation of an event
    fail clear                 - Remove every injected failure

  General:
    help                       - Show this help
    quit                       - Exit

  Events:
    network-state, call-state, cell-info, signal-info, sim-state,
    data-connection, data-flow, icc-account

  Emit fields (all events accept slot=N):
    data-flow        type=N
    sim-state        card=N state=N reason=N
    signal-info      signal=TYPE:LEVEL:DBM (repeatable)
    cell-info        cell=NETWORK:LEVEL:DBM (repeatable)
    data-connection  state=N network=N
    network-state    reg=N tech=N nsa=N long=S short=S plmn=S roaming=B emergency=B
    call-state       state=N number=S`)
}
