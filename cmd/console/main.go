package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countdown_timer/internal/console"
	"countdown_timer/internal/logger"
	"countdown_timer/internal/timer"

	"github.com/chzyer/readline"
)

func main() {
	var (
		startAt   time.Duration
		countDown bool
		interval  time.Duration
		logLevel  string
	)
	flag.DurationVar(&startAt, "start-at", 0, "Initial and reset value, e.g. 25m or -10s")
	flag.BoolVar(&countDown, "count-down", false, "Stop when the timer reaches zero")
	flag.DurationVar(&interval, "interval", timer.DefaultUpdateInterval, "Tick period")
	flag.StringVar(&logLevel, "log-level", logger.WarnLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create readline: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logLevel, rl.Stderr()).Named("console")
	con := console.New(timer.Config{
		StartAt:        startAt,
		CountDown:      countDown,
		UpdateInterval: interval,
		Log:            log,
	}, rl.Stdout())
	defer con.Engine().Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := con.Run(ctx, rl); err != nil && ctx.Err() == nil {
		log.Errorw("console_failed", "err", err)
		os.Exit(1)
	}
}
