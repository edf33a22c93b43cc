// Package console drives a timer engine from an interactive terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"countdown_timer/internal/timefmt"
	"countdown_timer/internal/timer"

	"github.com/chzyer/readline"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

var errUsage = errors.New("usage")

// Console owns one engine and prints its display to out.
type Console struct {
	engine *timer.Engine
	out    io.Writer
	now    func() time.Time

	mu        sync.Mutex
	lastFrame string
}

// New builds the engine from cfg with the console as its display. The
// countdown callback in cfg still runs after the console announces it.
func New(cfg timer.Config, out io.Writer) *Console {
	c := &Console{out: out, now: time.Now}
	if cfg.Clock != nil {
		c.now = cfg.Clock.Now
	}

	onCountdown := cfg.OnCountdown
	cfg.Display = c.display
	cfg.OnCountdown = func(e *timer.Engine, at timer.Info) {
		c.printf("countdown finished\n")
		if onCountdown != nil {
			onCountdown(e, at)
		}
	}
	c.engine = timer.New(cfg)
	return c
}

// Engine returns the engine the console drives.
func (c *Console) Engine() *timer.Engine {
	return c.engine
}

// display prints a frame when the shown text changes.
func (c *Console) display(p timefmt.Parts) {
	text := p.String()
	c.mu.Lock()
	defer c.mu.Unlock()
	if text == c.lastFrame {
		return
	}
	c.lastFrame = text
	fmt.Fprintln(c.out, text)
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// Run reads commands until quit, EOF or ctx is done. It closes rl.
func (c *Console) Run(ctx context.Context, rl *readline.Instance) error {
	defer rl.Close()
	// unblocks Readline on cancellation
	stop := context.AfterFunc(ctx, func() { _ = rl.Close() })
	defer stop()

	c.printHelp()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		if err := c.Exec(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			c.printf("error: %v\n", err)
		}
	}
}

// Exec runs one command line.
func (c *Console) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "start", "s":
		ff, err := optionalDuration(args)
		if err != nil {
			return err
		}
		c.engine.Start(ff)

	case "stop", "p":
		c.engine.Stop()

	case "reset", "r":
		quiet := len(args) > 0 && args[0] == "quiet"
		c.engine.Reset(quiet)

	case "restart":
		ff, err := optionalDuration(args)
		if err != nil {
			return err
		}
		c.engine.ResetAndStart(ff)

	case "set":
		f, ignored, err := parseFields(args, c.now())
		if err != nil {
			return err
		}
		for _, key := range ignored {
			c.printf("ignoring unknown field %q\n", key)
		}
		c.engine.Set(f)

	case "info", "i":
		c.printInfo()

	case "help", "?":
		c.printHelp()

	case "quit", "exit", "q":
		return ErrQuit

	default:
		return fmt.Errorf("unknown command %q (type 'help' for commands)", cmd)
	}
	return nil
}

func optionalDuration(args []string) (time.Duration, error) {
	if len(args) == 0 {
		return 0, nil
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: fast-forward must be a duration like 5s or -1m: %v", errUsage, err)
	}
	return d, nil
}

// parseFields reads key=value pairs for set and returns the keys it does
// not know. last_event is RFC3339 or an offset from now such as -5s.
func parseFields(args []string, now time.Time) (timer.Fields, []string, error) {
	var (
		f       timer.Fields
		ignored []string
	)
	if len(args) == 0 {
		return f, nil, fmt.Errorf("%w: set key=value...", errUsage)
	}
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok {
			return f, nil, fmt.Errorf("%w: %q is not key=value", errUsage, arg)
		}

		var err error
		switch strings.ToLower(key) {
		case "time":
			f.Time, err = durationPtr(val)
		case "start_at", "startat":
			f.StartAt, err = durationPtr(val)
		case "count_down", "countdown":
			f.CountDown, err = boolPtr(val)
		case "running":
			f.Running, err = boolPtr(val)
		case "action":
			a, known := timer.ParseAction(val)
			if !known {
				return f, nil, fmt.Errorf("unknown action %q", val)
			}
			f.Action = a
		case "delay":
			f.DelayAction, err = time.ParseDuration(val)
		case "compensate":
			f.Compensate, err = strconv.ParseBool(val)
		case "last_event":
			var t time.Time
			t, err = parseInstant(val, now)
			f.LastEventTime = &t
		default:
			ignored = append(ignored, key)
		}
		if err != nil {
			return f, nil, fmt.Errorf("field %s: %w", key, err)
		}
	}
	return f, ignored, nil
}

func durationPtr(s string) (*time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func boolPtr(s string) (*bool, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func parseInstant(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func (c *Console) printInfo() {
	info := c.engine.Info()
	c.printf("running=%t time=%s start_at=%s count_down=%t decreasing=%t last_event=%s\n",
		info.Running, info.Time, info.StartAt, info.CountDown, info.Decreasing,
		info.LastEventTime.Format(time.RFC3339))
}

func (c *Console) printHelp() {
	c.printf(`
Timer commands:
  start [ff]           - Start, fast-forwarding by a duration (e.g. 5s, -1m)
  stop                 - Stop
  reset [quiet]        - Back to the start value; quiet skips the reset callback
  restart [ff]         - Reset and start
  set key=value...     - time, start_at, count_down, running, action, delay,
                         compensate, last_event (RFC3339 or offset like -5s)
  info                 - Show engine state
  help                 - Show this help
  quit                 - Exit
`)
}
