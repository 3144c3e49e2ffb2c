// Command snapshot performs a single render pass against the station API
// and writes the resulting map as a standalone HTML page or a GeoJSON
// document.
//
// Usage:
//
//	go run ./cmd/snapshot -format html -out wind.html
//	go run ./cmd/snapshot -format geojson -url http://localhost:3000/api/all-stations
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/couchcryptid/wind-station-map/internal/adapter/mapview"
	"github.com/couchcryptid/wind-station-map/internal/adapter/stationapi"
	"github.com/couchcryptid/wind-station-map/internal/config"
	"github.com/couchcryptid/wind-station-map/internal/observability"
	"github.com/couchcryptid/wind-station-map/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defaultURL, err := cfg.StationsURL()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	stationsURL := fs.String("url", defaultURL, "station API endpoint")
	format := fs.String("format", "html", "output format: html or geojson")
	out := fs.String("out", "-", "output path, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *format != "html" && *format != "geojson" {
		fs.Usage()
		return fmt.Errorf("unknown -format %q", *format)
	}

	// Logs go to stderr so stdout stays clean for the snapshot itself.
	logger := observability.NewLoggerTo(stderr, cfg.LogLevel, "text")
	metrics := observability.NewUnregisteredMetrics()

	client := stationapi.NewClient(*stationsURL, cfg.StationsTimeout, metrics, logger)
	renderer := pipeline.NewRenderer(client, nil, logger, metrics)

	view := mapview.New(mapview.DefaultOptions())
	_, renderErr := renderer.Render(context.Background(), view, view)
	for _, n := range view.Notices() {
		fmt.Fprintln(stderr, n)
	}
	// A failed pass still yields a page with the notice; GeoJSON has no
	// place for one.
	if renderErr != nil && *format == "geojson" {
		return renderErr
	}

	if err := writeOutput(*out, stdout, func(w io.Writer) error {
		if *format == "geojson" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(view.GeoJSON())
		}
		return view.WriteHTML(w)
	}); err != nil {
		return err
	}

	return renderErr
}

// writeOutput writes to stdout when path is "-", otherwise to a new file.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
