// Command xrainbow cycles the gamma of an X11 display through a rainbow of
// colors.
//
// Usage:
//
//	xrainbow [OPTIONS]
//
// The gamma is restored to neutral when the time limit elapses or the process
// receives SIGINT, SIGTERM, or SIGSEGV.
//
// Environment:
//
//	DISPLAY             - X display (default for --display)
//	XRAINBOW_BACKEND    - gamma backend (default for --backend)
//	XRAINBOW_LOG_LEVEL  - log level (default for --log-level)
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env"
	charmlog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pgaskin/xrainbow"
	"github.com/pgaskin/xrainbow/gamma"
)

const versionBanner = `XRainbow version {{.Version}}

Copyright 2016 | Dario Ostuni <another.code.996@gmail.com>

Licensed to the Apache Software Foundation (ASF) under one
or more contributor license agreements.  See the NOTICE file
distributed with this work for additional information
regarding copyright ownership.  The ASF licenses this file
to you under the Apache License, Version 2.0 (the
"License"); you may not use this file except in compliance
with the License.  You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing,
software distributed under the License is distributed on an
"AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
KIND, either express or implied.  See the License for the
specific language governing permissions and limitations
under the License.
`

const usageTemplate = `Usage: {{.CommandPath}} [OPTIONS]

{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`

// environment contains defaults for flags.
type environment struct {
	Display  string `env:"DISPLAY"`
	Backend  string `env:"XRAINBOW_BACKEND" envDefault:"auto"`
	LogLevel string `env:"XRAINBOW_LOG_LEVEL" envDefault:"warn"`
}

type options struct {
	Config   xrainbow.Config
	Display  string
	Backend  gamma.Backend
	LogLevel charmlog.Level
}

// usageError is returned for invalid command-line arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

func main() {
	var environ environment
	if err := env.Parse(&environ); err != nil {
		fmt.Fprintf(os.Stderr, "error: parse environment: %v\n", err)
		os.Exit(1)
	}
	os.Exit(execute(newCommand(environ, rainbow), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs cmd, returning the exit status. Usage errors print the usage to
// stdout.
func execute(cmd *cobra.Command, args []string, stdout, stderr io.Writer) int {
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if errors.As(err, new(usageError)) {
			fmt.Fprintf(stderr, "error: %v\n", err)
			io.WriteString(stdout, cmd.UsageString())
			return 1
		}
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(environ environment, run func(*cobra.Command, options) error) *cobra.Command {
	var (
		config   = xrainbow.DefaultConfig()
		display  string
		backend  string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:           "xrainbow",
		Short:         "Cycle the display gamma through a rainbow",
		Version:       xrainbow.Version(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageError{fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return usageError{err}
			}
			b, err := gamma.ParseBackend(backend)
			if err != nil {
				return usageError{err}
			}
			level, err := charmlog.ParseLevel(logLevel)
			if err != nil {
				return usageError{err}
			}
			return run(cmd, options{
				Config:   config,
				Display:  display,
				Backend:  b,
				LogLevel: level,
			})
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.BoolP("help", "h", false, "Prints this help")
	f.BoolP("version", "v", false, "Prints version and copyright info")
	f.Float64VarP(&config.TimeLimit, "time-limit", "t", config.TimeLimit, "Time limit (float) in seconds, -1 for infinite")
	f.Float64VarP(&config.Speed, "speed", "s", config.Speed, "Rainbow speed (float), range (0; INFINITY)")
	f.Float64VarP(&config.Luminosity, "luminosity", "l", config.Luminosity, "Base luminosity (float), range [0.1; 9.9]")
	f.DurationVarP(&config.Interval, "interval", "i", config.Interval, "Pause between color changes, 0 to only yield the processor")
	f.StringVarP(&display, "display", "d", environ.Display, "X display to use")
	f.StringVarP(&backend, "backend", "b", environ.Backend, "Gamma backend (auto, vidmode, randr)")
	f.StringVar(&logLevel, "log-level", environ.LogLevel, "Log level (debug, info, warn, error)")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})
	cmd.SetVersionTemplate(versionBanner)
	cmd.SetUsageTemplate(usageTemplate)
	cmd.SetHelpTemplate(`{{.UsageString}}`)
	return cmd
}

// rainbow opens the display and runs the rainbow on it.
func rainbow(cmd *cobra.Command, o options) error {
	logger := slog.New(charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{
		Level:           o.LogLevel,
		Prefix:          "xrainbow",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}))

	display, err := gamma.Open(o.Display, o.Backend, logger)
	if err != nil {
		return err
	}
	defer display.Close()

	var shutdown xrainbow.Shutdown
	stop := shutdown.Notify()
	defer stop()

	limit := "none"
	if !o.Config.Unbounded() {
		limit = humanize.Ftoa(o.Config.TimeLimit) + "s"
	}
	logger.Info("starting rainbow",
		"backend", display.Backend(),
		"time_limit", limit,
		"speed", humanize.Ftoa(o.Config.Speed),
		"luminosity", strconv.FormatFloat(o.Config.Luminosity, 'f', 3, 64),
	)

	res, err := (&xrainbow.Driver{
		Config:   o.Config,
		Gamma:    display,
		Shutdown: &shutdown,
		Logger:   logger,
	}).Run()
	if err != nil {
		return err
	}

	logger.Info("rainbow finished",
		"reason", res.Reason,
		"iterations", humanize.Comma(res.Iterations),
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return nil
}
