// Copyright 2026 Gravitational, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/gravitational/shared-workflows/tools/seq-export/config"
	"github.com/gravitational/shared-workflows/tools/seq-export/csvexport"
	"github.com/gravitational/shared-workflows/tools/seq-export/dispatch"
	"github.com/gravitational/shared-workflows/tools/seq-export/logging"
	"github.com/gravitational/shared-workflows/tools/seq-export/sequence"
	"github.com/gravitational/trace"
)

type cli struct {
	app *kingpin.Application

	configFile *string
	logLevel   *string
	logFormat  *string
	timeout    *time.Duration

	writeCmd      *kingpin.CmdClause
	writePath     *string
	writeSequence *string
	writeValues   *[]string

	csvCmd    *kingpin.CmdClause
	csvDir    *string
	csvValues *[]string
}

func newCLI(stderr io.Writer) *cli {
	c := &cli{app: kingpin.New("seq-export", "Export calculated sequences to INI, JSON, XML and CSV files")}
	c.app.HelpFlag.Short('h')
	c.app.UsageWriter(stderr).ErrorWriter(stderr)

	c.configFile = c.app.Flag("config", "YAML configuration file").Short('c').ExistingFile()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()
	c.logFormat = c.app.Flag("log-format", "Log format (text, json)").String()
	c.timeout = c.app.Flag("timeout", "Maximum execution time (e.g. 30s, 2m); 0 means no timeout").Default("0").Duration()

	c.writeCmd = c.app.Command("write", "Write the sequence to a .ini, .json or .xml file")
	c.writePath = c.writeCmd.Arg("path", "Output file or s3://bucket/key; the extension selects the format").Required().String()
	c.writeSequence = c.writeCmd.Flag("sequence", "Serialized sequence, written as is").Short('s').String()
	c.writeValues = c.writeCmd.Flag("value", "Sequence value, repeatable or comma separated").Short('v').Strings()

	c.csvCmd = c.app.Command("csv", "Dump the sequence to a timestamped .csv file")
	c.csvDir = c.csvCmd.Flag("dir", "Directory for the CSV file (default: desktop)").String()
	c.csvValues = c.csvCmd.Arg("values", "Sequence values").Required().Strings()

	return c
}

func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*c.configFile, nil)
	if err != nil {
		return nil, trace.Wrap(err, "loading configuration")
	}

	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	if *c.logFormat != "" {
		cfg.LogFormat = *c.logFormat
	}
	if *c.csvDir != "" {
		cfg.CSVDir = *c.csvDir
	}

	return cfg, trace.Wrap(cfg.Validate())
}

func (c *cli) provider() (sequence.Provider, error) {
	switch {
	case *c.writeSequence != "" && len(*c.writeValues) > 0:
		return nil, trace.BadParameter("--sequence and --value are mutually exclusive")
	case *c.writeSequence != "":
		return sequence.Static(*c.writeSequence), nil
	case len(*c.writeValues) > 0:
		values, err := sequence.ParseValues(*c.writeValues)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		return sequence.FromValues(values), nil
	default:
		return nil, trace.BadParameter("one of --sequence or --value is required")
	}
}

func runWrite(ctx context.Context, c *cli, stdout io.Writer) error {
	provider, err := c.provider()
	if err != nil {
		return trace.Wrap(err)
	}

	d, err := dispatch.New(dispatch.WithNotices(stdout))
	if err != nil {
		return trace.Wrap(err)
	}

	// The dispatcher already told the user why a path was not written. An
	// unsupported extension only asks for another path, so it exits 0.
	switch outcome := d.WriteSequenceToFile(ctx, *c.writePath, provider); outcome {
	case dispatch.OutcomeWritten, dispatch.OutcomeUnsupported:
		return nil
	default:
		return trace.Errorf("%q was not written (%v)", *c.writePath, outcome)
	}
}

func runCSV(ctx context.Context, c *cli, cfg *config.Config, stdout io.Writer) error {
	values, err := sequence.ParseValues(*c.csvValues)
	if err != nil {
		return trace.Wrap(err)
	}

	exporter := &csvexport.Exporter{Dir: cfg.CSVDir}
	path, err := exporter.Export(ctx, values)
	if err != nil {
		return trace.Wrap(err, "exporting CSV")
	}

	fmt.Fprintln(stdout, path)
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	c := newCLI(stderr)

	cmd, err := c.app.Parse(args)
	if err != nil {
		return trace.Wrap(err, "failed to parse command line arguments")
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return trace.Wrap(err)
	}

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return trace.Wrap(err)
	}
	slog.SetDefault(logger)

	// setup timeout context
	ctx := logging.ToCtx(context.Background(), logger)
	var cancel context.CancelFunc
	if *c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, *c.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	switch cmd {
	case c.writeCmd.FullCommand():
		return runWrite(ctx, c, stdout)
	case c.csvCmd.FullCommand():
		return runCSV(ctx, c, cfg, stdout)
	default:
		return trace.NotImplemented("unimplemented command %q", cmd)
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
