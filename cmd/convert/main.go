package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/second-order-ai/singapore-postcode-geocoding/adapters/tabular"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/identify"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/postcode"
	"github.com/second-order-ai/singapore-postcode-geocoding/domain/table"
	"github.com/second-order-ai/singapore-postcode-geocoding/ports"
)

func main() {
	referenceFile := flag.String("reference", "", "single-column CSV/XLSX file with master postcodes (required)")
	outDir := flag.String("out", ".", "directory for converted CSV output")
	sampleSize := flag.Int("sample", 100, "rows sampled per column during identification")
	threshold := flag.Float64("threshold", 0.1, "minimum sampled success rate, inclusive")
	seed := flag.Int64("seed", 42, "sampling seed")
	dropIncorrect := flag.Bool("drop-incorrect", false, "remove rows that fail validation")
	flag.Parse()

	inputs := flag.Args()
	if *referenceFile == "" || len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: convert -reference master.csv [flags] input.csv [input2.xlsx ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	refs, err := tabular.NewReferenceFileSource(*referenceFile).LoadReferenceSet(ctx)
	if err != nil {
		log.Fatalf("Failed to load reference postcodes: %v", err)
	}
	log.Printf("Loaded %d master postcodes", len(refs))

	vcfg := postcode.DefaultValidationConfig()
	vcfg.DropIncorrect = *dropIncorrect
	icfg := identify.Config{
		Pattern:          postcode.DefaultPattern,
		SampleSize:       *sampleSize,
		SuccessThreshold: *threshold,
		Seed:             *seed,
	}
	identifier, err := identify.NewIdentifier(vcfg, refs, icfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Each file converts independently; the core itself stays synchronous
	// per call.
	group, _ := errgroup.WithContext(ctx)
	for _, input := range inputs {
		input := input
		group.Go(func() error {
			return convertFile(identifier, tabular.NewDataReader(input), input, *outDir)
		})
	}
	if err := group.Wait(); err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
}

// convertFile runs auto-identification on one file and writes the annotated
// table next to it as CSV.
func convertFile(identifier *identify.Identifier, reader ports.TableReader, input, outDir string) error {
	tbl, err := reader.ReadTable(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	outcome, err := identifier.Convert(tbl)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if !outcome.Success {
		best := "none"
		if len(outcome.Candidates) > 0 {
			top := outcome.Candidates[0]
			best = fmt.Sprintf("column %q method %s at %.1f%%", top.Column, top.Method, 100*top.SuccessRate)
		}
		return fmt.Errorf("%s: no postcode column identified (best candidate: %s)", input, best)
	}

	log.Printf("%s: converted using column %q method %s (%.1f%% sampled success)",
		input, outcome.Chosen.Column, outcome.Chosen.Method, 100*outcome.Chosen.SuccessRate)

	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outPath := filepath.Join(outDir, base+".converted.csv")
	return writeCSV(outcome.Table, outPath)
}

// writeCSV renders a table to disk; missing cells become empty fields
func writeCSV(tbl *table.Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	columns := tbl.Columns()
	if err := writer.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for i := 0; i < tbl.NumRows(); i++ {
		for j, col := range columns {
			record[j] = tbl.Value(i, col).String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
