package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dd0wney/cluso-isolate/pkg/analysis"
	"github.com/dd0wney/cluso-isolate/pkg/config"
	"github.com/dd0wney/cluso-isolate/pkg/isolation"
	"github.com/dd0wney/cluso-isolate/pkg/logging"
	"github.com/dd0wney/cluso-isolate/pkg/metrics"
	"github.com/dd0wney/cluso-isolate/pkg/network"
	"github.com/dd0wney/cluso-isolate/pkg/snapshot"
	"github.com/dd0wney/cluso-isolate/pkg/validation"
	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "isolate: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	systems    int
	connectors int
	interfaces int
	batch      int
	criterion  string
	seed       uint64
	seedSet    bool
	format     string
	save       string
	load       string
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("isolate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "YAML config file supplying defaults")
	fs.IntVar(&opts.systems, "systems", 0, "Number of systems")
	fs.IntVar(&opts.connectors, "connectors", 0, "Number of connectors")
	fs.IntVar(&opts.interfaces, "interfaces", 0, "Number of interfaces")
	fs.IntVar(&opts.batch, "batch", 0, "Batch size to isolate")
	fs.StringVar(&opts.criterion, "criterion", "", "Isolation criterion: load or priority")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed (default: clock)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json or yaml")
	fs.StringVar(&opts.save, "save", "", "Write the network to a snapshot (.json, .yaml, optionally .sz)")
	fs.StringVar(&opts.load, "load", "", "Isolate a network read from a snapshot instead of generating one")
	fs.BoolVar(&opts.verbose, "v", false, "Log generation and isolation at debug level to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["systems"] {
		opts.systems = cfg.Generator.Systems
	}
	if !set["connectors"] {
		opts.connectors = cfg.Generator.Connectors
	}
	if !set["interfaces"] {
		opts.interfaces = cfg.Generator.Interfaces
	}
	if !set["batch"] {
		opts.batch = cfg.Isolation.BatchSize
	}
	if !set["criterion"] {
		opts.criterion = cfg.Isolation.Criterion
	}
	opts.seedSet = set["seed"]
	if !opts.seedSet && cfg.Generator.Seed != nil {
		opts.seed, opts.seedSet = *cfg.Generator.Seed, true
	}

	if err := validation.ValidateGenerateRequest(&validation.GenerateRequest{
		Systems:    opts.systems,
		Connectors: opts.connectors,
		Interfaces: opts.interfaces,
	}); err != nil {
		return nil, err
	}
	if err := validation.ValidateBatchSize(opts.batch); err != nil {
		return nil, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	criterion, err := isolation.ParseCriterion(opts.criterion)
	if err != nil {
		return err
	}

	var logger logging.Logger = logging.NewNopLogger()
	if opts.verbose {
		logger = logging.NewJSONLogger(stderr, logging.DebugLevel)
	}

	var n *network.Network
	if opts.load != "" {
		if n, err = snapshot.Load(opts.load); err != nil {
			return err
		}
	} else {
		src := network.NewTimeSource()
		if opts.seedSet {
			src = network.NewSource(opts.seed)
		}
		n = network.NewGenerator(src, logger).Generate(opts.systems, opts.connectors, opts.interfaces)
	}

	if opts.save != "" {
		if err := snapshot.Save(opts.save, n); err != nil {
			return err
		}
	}

	report := isolation.NewIsolator(logger, metrics.NewRegistry()).Isolate(n, opts.batch, criterion)
	out := newOutput(n, report)

	switch strings.ToLower(opts.format) {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		defer enc.Close()
		return enc.Encode(out)
	case "text":
		return writeText(stdout, out, report)
	}
	return fmt.Errorf("unknown output format %q", opts.format)
}

// output is the machine-readable result of one run
type output struct {
	NetworkID        string               `json:"networkId" yaml:"networkId"`
	Seed             uint64               `json:"seed" yaml:"seed"`
	Stats            network.Stats        `json:"stats" yaml:"stats"`
	Criterion        string               `json:"criterion" yaml:"criterion"`
	BatchSize        int                  `json:"batchSize" yaml:"batchSize"`
	Batch            []string             `json:"batch" yaml:"batch"`
	InitialStability float64              `json:"initialStability" yaml:"initialStability"`
	Stability        float64              `json:"stability" yaml:"stability"`
	WindowStart      int                  `json:"windowStart" yaml:"windowStart"`
	WindowsEvaluated int                  `json:"windowsEvaluated" yaml:"windowsEvaluated"`
	Assessment       *analysis.Assessment `json:"assessment" yaml:"assessment"`
}

func newOutput(n *network.Network, report *isolation.Report) *output {
	return &output{
		NetworkID:        n.ID,
		Seed:             n.Seed,
		Stats:            network.ComputeStats(n),
		Criterion:        report.Criterion.String(),
		BatchSize:        report.BatchSize,
		Batch:            report.BatchIDs(),
		InitialStability: report.InitialStability,
		Stability:        report.Stability,
		WindowStart:      report.WindowStart,
		WindowsEvaluated: report.WindowsEvaluated,
		Assessment:       report.Assessment,
	}
}

func writeText(w io.Writer, out *output, report *isolation.Report) error {
	s := out.Stats
	fmt.Fprintf(w, "Network %s (seed %d)\n", out.NetworkID, out.Seed)
	fmt.Fprintf(w, "  systems %d, connectors %d, interfaces %d\n", s.Counts.Systems, s.Counts.Connectors, s.Counts.Interfaces)
	fmt.Fprintf(w, "  connections %d, avg connectivity %.2f, interface links %d-%d\n\n",
		s.TotalConnections, s.AverageConnectivity, s.MinInterfaceLinks, s.MaxInterfaceLinks)

	selected := make(map[string]bool, len(out.Batch))
	for _, id := range out.Batch {
		selected[id] = true
	}

	fmt.Fprintf(w, "Isolation by %s, batch %d\n", out.Criterion, out.BatchSize)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSYSTEM\tLOAD\tPRIORITY\tIMPACT\tSCORE\t")
	for i, r := range report.Ranking {
		mark := ""
		if selected[r.System.ID] {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s%s\t%.1f\t%d\t%d\t%.2f\t\n",
			i+1, r.System.ID, mark, r.System.Attributes.Load, r.System.Attributes.Priority, r.Impact, r.Score)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nSelected: %s\n", strings.Join(out.Batch, ", "))
	fmt.Fprintf(w, "Stability %.2f -> %.2f (window %d, %d evaluated)\n",
		out.InitialStability, out.Stability, out.WindowStart, out.WindowsEvaluated)

	a := out.Assessment
	stranded := "none"
	if len(a.Stranded) > 0 {
		stranded = strings.Join(a.Stranded, ", ")
	}
	fmt.Fprintf(w, "Components %d -> %d, largest %d -> %d, stranded: %s\n",
		a.ComponentsBefore, a.ComponentsAfter, a.LargestBefore, a.LargestAfter, stranded)
	return nil
}
