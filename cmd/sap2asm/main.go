// Command sap2asm is a two-pass assembler for the SAP2-class 8-bit CPU:
// it reads a line-oriented assembly source file and writes one or more
// ASCII hex memory-initialization files.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lookbusy1344/sap2-asm/config"
	"github.com/lookbusy1344/sap2-asm/emitter"
	"github.com/lookbusy1344/sap2-asm/internal/applog"
	"github.com/lookbusy1344/sap2-asm/parser"
	"github.com/lookbusy1344/sap2-asm/region"
)

// Version, Commit and Date are set via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var regionFlags []string
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "sap2asm INPUT [OUTPUT]",
		Short:   "Assemble SAP2-class source into region hex files",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date),
		Args:    cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			return assemble(positional, regionFlags, configPath, verbose)
		},
	}
	rootCmd.Flags().StringArrayVar(&regionFlags, "region", nil, "NAME START_HEX END_HEX (repeatable); when given, positional 2 is the output base directory")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a TOML config file (optional)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func assemble(positional, regionFlags []string, configPath string, verbose bool) error {
	logger := applog.New(verbose)

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	inputPath := positional[0]
	outputArg := cfg.Output.DefaultDir
	if len(positional) == 2 {
		outputArg = positional[1]
	}

	regionConfigs, err := resolveRegions(regionFlags, cfg)
	if err != nil {
		return err
	}

	var regions *region.Manager
	if len(regionConfigs) == 0 {
		out := outputArg
		if len(positional) < 2 {
			return fmt.Errorf("output file path is required when no --region flags are given")
		}
		regions = region.NewImplicitManager(out)
	} else {
		regions, err = region.NewManager(outputArg, regionConfigs)
		if err != nil {
			return fmt.Errorf("region configuration: %w", err)
		}
	}

	logger.Debug("starting first pass", "input", inputPath)

	program, warnings, err := parser.RunFirstPass(inputPath, parser.DefaultLineReader, parser.DefaultPathResolver)
	if err != nil {
		return fmt.Errorf("first pass: %w", err)
	}

	for _, sym := range program.Symbols.All() {
		logger.Debug("resolved symbol", "name", sym.Name, "value", fmt.Sprintf("0x%04X", sym.Value), "defined", sym.Defined.String())
	}

	logger.Debug("starting second pass", "tokens", len(program.Tokens))

	em := emitter.New(program.Symbols, regions, warnings, logger)
	if err := em.Run(program.Tokens); err != nil {
		return fmt.Errorf("second pass: %w", err)
	}

	for _, w := range warnings.Warnings {
		fmt.Fprintln(os.Stderr, w.String())
	}

	for _, r := range regions.Regions {
		if !r.HasContent() {
			continue
		}
		if err := os.WriteFile(r.OutputFilename, []byte(r.Text()), 0644); err != nil { //nolint:gosec // output path comes from the operator's own CLI arguments
			return fmt.Errorf("writing %s: %w", r.OutputFilename, err)
		}
		logger.Info("wrote region", "name", r.Name, "file", r.OutputFilename)
	}

	return nil
}

// resolveRegions picks the region list: the --region flags when any are
// given, otherwise the [[regions]] declared in the config file. Command-line
// regions replace the config file's region list entirely rather than merging
// with it.
func resolveRegions(regionFlags []string, cfg *config.Config) ([]region.RegionConfig, error) {
	if len(regionFlags) > 0 {
		out := make([]region.RegionConfig, 0, len(regionFlags))
		for _, rf := range regionFlags {
			rc, err := parseRegionFlag(rf)
			if err != nil {
				return nil, err
			}
			out = append(out, rc)
		}
		return out, nil
	}

	parsed, err := cfg.ParseRegions()
	if err != nil {
		return nil, fmt.Errorf("config regions: %w", err)
	}
	out := make([]region.RegionConfig, 0, len(parsed))
	for _, p := range parsed {
		out = append(out, region.RegionConfig{Name: p.Name, Start: p.Start, End: p.End})
	}
	return out, nil
}

func parseRegionFlag(raw string) (region.RegionConfig, error) {
	fields := strings.Fields(raw)
	if len(fields) != 3 {
		return region.RegionConfig{}, fmt.Errorf("--region requires NAME START_HEX END_HEX, got %q", raw)
	}
	start, err := parseHex(fields[1])
	if err != nil {
		return region.RegionConfig{}, fmt.Errorf("--region %s: invalid start %q: %w", fields[0], fields[1], err)
	}
	end, err := parseHex(fields[2])
	if err != nil {
		return region.RegionConfig{}, fmt.Errorf("--region %s: invalid end %q: %w", fields[0], fields[2], err)
	}
	if start > end {
		return region.RegionConfig{}, fmt.Errorf("--region %s: start 0x%04X is greater than end 0x%04X", fields[0], start, end)
	}
	return region.RegionConfig{Name: fields[0], Start: start, End: end}, nil
}

func parseHex(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
