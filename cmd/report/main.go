// Command report renders a report configuration file.
//
// Usage:
//
//	report [-o output] [-out file] [-title title] [-sort Last,!First] [config]
//
// The configuration is read from the named file, or from stdin when it is
// omitted or "-". Files ending in .yaml or .yml are read as YAML, anything
// else as JSON.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bjaus/report"
	"github.com/bjaus/report/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		slog.Error("report failed", "error", err)
		os.Exit(1)
	}
}

type options struct {
	output   string
	out      string
	title    string
	sort     string
	logLevel string
	input    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", report.Table.String(), "output: "+outputNames()+" or go-template=<tmpl>")
	fs.StringVar(&opts.out, "out", "", "write to `file` instead of stdout")
	fs.StringVar(&opts.title, "title", "", "report title")
	fs.StringVar(&opts.sort, "sort", "", "comma separated sort `keys`, ! for descending")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	switch fs.NArg() {
	case 0:
		opts.input = "-"
	case 1:
		opts.input = fs.Arg(0)
	default:
		return options{}, fmt.Errorf("expected at most one config file, got %d", fs.NArg())
	}
	return opts, nil
}

func outputNames() string {
	names := make([]string, 0, len(report.Outputs()))
	for _, o := range report.Outputs() {
		names = append(names, o.String())
	}
	return strings.Join(names, ", ")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := logging.Setup(stderr, opts.logLevel, "text")

	o, err := report.ParseOutput(opts.output)
	if err != nil {
		return err
	}

	config, err := readConfig(opts.input, stdin)
	if err != nil {
		return err
	}
	rep, err := report.New(config)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.input, err)
	}
	if opts.title != "" {
		rep.SetTitle(opts.title)
	}
	if opts.sort != "" {
		if err := rep.SetSort(strings.Split(opts.sort, ",")); err != nil {
			return err
		}
	}
	logger.Debug("report loaded", "input", opts.input, "columns", len(rep.Columns()), "rows", len(rep.Rows()))

	b, err := report.Marshal(o, rep)
	if err != nil {
		return err
	}
	if opts.out == "" {
		_, err = stdout.Write(b)
		return err
	}
	if err := os.WriteFile(opts.out, b, 0o644); err != nil {
		return err
	}
	logger.Info("report written", "path", opts.out, "output", o.String(), "bytes", len(b))
	return nil
}

// readConfig reads the named file or stdin and decodes YAML files by
// extension. JSON is returned as bytes for [report.New] to decode.
func readConfig(name string, stdin io.Reader) (any, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return report.DecodeYAML(data)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}
