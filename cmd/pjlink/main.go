// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

// Command pjlink controls a PJLink class 1 projector from the command line.
//
// Every command opens its own connection to the projector, sends one request
// and closes the connection again, so the tool is safe to script.
//
// Usage:
//
//	pjlink [flags] <command> [args]
//
// Flags:
//
//	-config string       YAML configuration file
//	-host string         Projector address
//	-port int            PJLink port (default 4352)
//	-password string     PJLink password (or PJLINK_PASSWORD)
//	-timeout duration    Read and write timeout (default 5s)
//	-settle duration     Delay before closing each connection (default 1.5s)
//	-log-level string    Log level: debug, info, warn, error, disabled (default "warn")
//	-interactive         Start an interactive shell
//	-no-color            Disable colored output
//
// Commands:
//
//	power on|off|status
//	input [type index]
//	mute status|video on|off|audio on|off|shutter open|close
//	lamp | errors | inputs
//	name | manufacturer | model | class | info
//	status
//
// Examples:
//
//	# Switch a projector on
//	pjlink -host 192.168.1.50 power on
//
//	# Select the first digital input on a password protected projector
//	PJLINK_PASSWORD=JBMIAProjectorLink pjlink -host 192.168.1.50 input digital 1
//
//	# Query everything using a config file
//	pjlink -config /etc/pjlink/hall.yaml status
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pion/logging"

	"github.com/tenthirtyam/go-pjlink"
)

type cliFlags struct {
	ConfigFile  string
	Host        string
	Port        int
	Password    string
	Timeout     time.Duration
	Settle      time.Duration
	LogLevel    string
	Interactive bool
	NoColor     bool
}

var flags cliFlags

func init() {
	flag.StringVar(&flags.ConfigFile, "config", "", "YAML configuration file")
	flag.StringVar(&flags.Host, "host", "", "Projector address")
	flag.IntVar(&flags.Port, "port", pjlink.DefaultPort, "PJLink port")
	flag.StringVar(&flags.Password, "password", "", "PJLink password (or "+pjlink.PasswordEnv+")")
	flag.DurationVar(&flags.Timeout, "timeout", pjlink.DefaultReadTimeout, "Read and write timeout")
	flag.DurationVar(&flags.Settle, "settle", pjlink.DefaultSettleDelay, "Delay before closing each connection")
	flag.StringVar(&flags.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error, disabled")
	flag.BoolVar(&flags.Interactive, "interactive", false, "Start an interactive shell")
	flag.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [args]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), "\n"+commandHelp)
	}
}

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := newPrinter(os.Stdout, colorEnabled(os.Stdout, flags.NoColor))

	if flags.Interactive {
		if err := runShell(ctx, cfg, out); err != nil {
			fmt.Fprintf(os.Stderr, "Shell failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	projector := cfg.NewProjector(pjlink.WithLogger(newLogger(cfg.LogLevel, os.Stderr)))
	if err := dispatch(ctx, projector, out, flag.Args()); err != nil {
		out.Failure(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, the password environment variable and
// explicitly set flags, in that order of increasing precedence.
func loadConfig() (*pjlink.Config, error) {
	cfg := &pjlink.Config{Port: pjlink.DefaultPort, LogLevel: flags.LogLevel}

	if flags.ConfigFile != "" {
		loaded, err := pjlink.LoadConfig(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.LogLevel == "" {
			cfg.LogLevel = flags.LogLevel
		}
	} else if password, ok := os.LookupEnv(pjlink.PasswordEnv); ok {
		cfg.Password = password
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = flags.Host
		case "port":
			cfg.Port = flags.Port
		case "password":
			cfg.Password = flags.Password
		case "timeout":
			d := pjlink.Duration(flags.Timeout)
			cfg.ReadTimeout = &d
			cfg.WriteTimeout = &d
		case "settle":
			d := pjlink.Duration(flags.Settle)
			cfg.SettleDelay = &d
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a pion-backed logger writing to w at the given level.
func newLogger(level string, w io.Writer) pjlink.Logger {
	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = w

	switch level {
	case "debug":
		factory.DefaultLogLevel = logging.LogLevelDebug
	case "info":
		factory.DefaultLogLevel = logging.LogLevelInfo
	case "error":
		factory.DefaultLogLevel = logging.LogLevelError
	case "disabled":
		factory.DefaultLogLevel = logging.LogLevelDisabled
	default:
		factory.DefaultLogLevel = logging.LogLevelWarn
	}

	return pjlink.NewPionLogger(factory, "pjlink")
}
