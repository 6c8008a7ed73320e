// Command profile analyzes a tabular file from the command line and prints
// the field summary and chart suggestions as markdown.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"chartadvisor/adapters/tabular"
	"chartadvisor/internal/profile"
	"chartadvisor/internal/recommend"
	"chartadvisor/internal/report"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: profile <file.csv|file.xlsx>")
		os.Exit(2)
	}
	path := os.Args[1]

	tbl, err := tabular.NewReader(path).Read()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	extractor := profile.NewExtractor(profile.DefaultConfig())
	fields, err := extractor.Profile(context.Background(), tbl)
	if err != nil {
		log.Fatalf("Failed to profile %s: %v", path, err)
	}

	engine := recommend.NewEngine()
	md := report.Markdown(report.Input{
		Title:           filepath.Base(path),
		TotalRows:       len(tbl.Rows),
		Fields:          fields,
		Recommendations: engine.Recommend(fields, len(tbl.Rows), 0),
		Correlations:    profile.Correlations(tbl, fields),
	})
	fmt.Print(md)
}
