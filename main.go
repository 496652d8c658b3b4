package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MWoidt/simplecast/internal/adapters/gochromecast"
	"github.com/MWoidt/simplecast/internal/buildinfo"
	"github.com/MWoidt/simplecast/internal/bus"
	"github.com/MWoidt/simplecast/internal/config"
	"github.com/MWoidt/simplecast/internal/domain"
	"github.com/MWoidt/simplecast/internal/gateway"
	"github.com/MWoidt/simplecast/internal/node"
	"github.com/MWoidt/simplecast/internal/stdio"
	"github.com/MWoidt/simplecast/internal/tts"
)

type rootFlags struct {
	configPath  string
	host        string
	name        string
	listen      string
	useStdio    bool
	selfTest    bool
	showVersion bool
}

type selfTestOutput struct {
	Node struct {
		Name    string `json:"name"`
		Version string `json:"version"`
		Host    string `json:"host"`
	} `json:"node"`
	Wiring struct {
		CastFactoryWired bool   `json:"cast_factory_wired"`
		SpeechWired      bool   `json:"speech_wired"`
		Transport        string `json:"transport"`
	} `json:"wiring"`
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "simplecast",
		Short:         "Resilient control-channel client for a cast media receiver",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a JSON config file")
	cmd.Flags().StringVar(&flags.host, "host", "", "cast device host, overrides config")
	cmd.Flags().StringVar(&flags.name, "name", "", "display name used in log records")
	cmd.Flags().StringVar(&flags.listen, "listen", "", "serve the websocket gateway on this address instead of stdio")
	cmd.Flags().BoolVar(&flags.useStdio, "stdio", false, "force the stdio bridge even when a listen address is configured")
	cmd.Flags().BoolVar(&flags.selfTest, "self-test", false, "print the wiring report and exit")
	cmd.Flags().BoolVar(&flags.showVersion, "version", false, "print version and exit")
	return cmd
}

func run(flags *rootFlags) error {
	if flags.showVersion {
		fmt.Println(buildinfo.Version)
		return nil
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.host != "" {
		cfg.Host = flags.host
	}
	if flags.name != "" {
		cfg.Name = flags.name
	}
	if flags.listen != "" {
		cfg.Listen = flags.listen
	}
	if flags.useStdio {
		cfg.Listen = ""
	}

	factory := gochromecast.Factory{}
	speech := tts.NewGoogle()

	transport := "stdio"
	if cfg.Listen != "" {
		transport = "websocket"
	}

	if flags.selfTest {
		out := selfTestOutput{}
		out.Node.Name = cfg.Name
		out.Node.Version = buildinfo.Version
		out.Node.Host = cfg.Host
		out.Wiring.CastFactoryWired = true
		out.Wiring.SpeechWired = speech != nil
		out.Wiring.Transport = transport

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	logger.Info(
		"node_start",
		slog.String("version", buildinfo.Version),
		slog.String("host", cfg.Host),
		slog.String("transport", transport),
		slog.String("log_level", logLevel.String()),
	)

	runCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	mb := bus.NewMessageBus()
	defer mb.Close()

	var gw *gateway.Server
	if transport == "websocket" {
		gw = gateway.New(cfg.Listen, mb, logger)
	}

	indicate := func(in domain.Indicator) {
		logger.Debug("indicator",
			slog.String("fill", in.Fill),
			slog.String("text", in.Text),
		)
		if gw != nil {
			gw.Indicate(in)
		}
	}

	castNode, err := node.New(node.Options{
		Host:          cfg.Host,
		Name:          cfg.Name,
		RetryInterval: cfg.RetryInterval(),
		Factory:       factory,
		Speech:        speech,
		Bus:           mb,
		Logger:        logger,
		Indicate:      indicate,
	})
	if err != nil {
		return err
	}

	nodeDone := make(chan error, 1)
	go func() { nodeDone <- castNode.Run(runCtx) }()

	var runErr error
	if gw != nil {
		runErr = gw.Run(runCtx)
	} else {
		runErr = stdio.New(os.Stdin, os.Stdout, mb, logger).Run(runCtx)
	}

	stopSignals()
	mb.Close()

	select {
	case <-nodeDone:
	case <-time.After(5 * time.Second):
		logger.Warn("node_stopping", slog.String("reason", "shutdown_timeout"))
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, http.ErrServerClosed) {
		logger.Warn("node_stopping", slog.String("reason", runErr.Error()))
		return runErr
	}
	logger.Info("node_stopping", slog.String("reason", "clean_shutdown"))
	return nil
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
