// Command eln2rdf converts an ELN export archive into an RDF Turtle file,
// driven by a YAML keymap.
//
// Usage:
//
//	eln2rdf -k keymap.yaml [-o out.ttl] [--pattern ftw.json] [--plot graph.dot] export.eln
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dd0wney/eln2rdf/pkg/archive"
	"github.com/dd0wney/eln2rdf/pkg/builder"
	"github.com/dd0wney/eln2rdf/pkg/keymap"
	"github.com/dd0wney/eln2rdf/pkg/logging"
)

func main() {
	var (
		keymapPath = flag.String("k", "", "Path to the YAML keymap file (required)")
		output     = flag.String("o", "", "Output Turtle file (default: input basename + .ttl)")
		pattern    = flag.String("pattern", archive.DefaultPattern, "Suffix pattern matching JSON members in the export")
		plot       = flag.String("plot", "", "Write a Graphviz DOT rendering of the graph to this file")
		institute  = flag.String("institute", "", "Institute name stamped onto every record")
		logLevel   = flag.String("loglevel", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	)
	flag.Usage = usage
	flag.Parse()

	if *keymapPath == "" || flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	exportPath := flag.Arg(0)

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	logging.SetDefaultLogger(logger)

	km, err := keymap.Load(*keymapPath)
	if err != nil {
		logger.Error("keymap load failed", logging.Path(*keymapPath), logging.Error(err))
		os.Exit(1)
	}
	logger.Info("keymap loaded", logging.Path(*keymapPath))

	reader := &archive.Reader{Pattern: *pattern, Logger: logger}
	records, err := reader.Extract(exportPath)
	if err != nil {
		logger.Error("archive extraction failed", logging.Path(exportPath), logging.Error(err))
		os.Exit(1)
	}

	opts := []builder.Option{builder.WithLogger(logger)}
	if *institute != "" {
		opts = append(opts, builder.WithInstitute(*institute))
	}
	b, err := builder.New(km, opts...)
	if err != nil {
		logger.Error("builder setup failed", logging.Error(err))
		os.Exit(1)
	}

	timer := logging.StartTimer(logger, "conversion finished", logging.Path(exportPath))
	graph, report, err := b.Build(records)
	if err != nil {
		timer.EndError(err)
		os.Exit(1)
	}
	timer.End(logging.Records(report.Records), logging.Skipped(report.SkippedCount()))

	for _, s := range report.Skipped {
		logger.Warn("record omitted from graph",
			logging.Source(s.Source), logging.RecordID(s.ElabID), logging.String("reason", s.Reason))
	}

	outPath := *output
	if outPath == "" {
		base := filepath.Base(exportPath)
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".ttl"
	}
	if err := graph.SerializeFile(outPath); err != nil {
		logger.Error("serialization failed", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("RDF graph serialized", logging.Path(outPath), logging.Triples(graph.Len()))

	if *plot != "" {
		if err := graph.ExportDOTFile(*plot); err != nil {
			logger.Error("plot export failed", logging.Error(err))
			os.Exit(1)
		}
		logger.Info("DOT rendering written", logging.Path(*plot))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -k keymap.yaml [options] <eln-export>\n\nOptions:\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}
