// blgen is a command-line tool for rendering House Bills of Lading.
//
// It reads a house document input (YAML or JSON), lays it out on as many
// pages as the cargo table needs and writes the result as PDF, SVG or PNG
// to a local file or a Google Cloud Storage object.
//
// Usage:
//
//	blgen -input house.yml -output bl.pdf [options]
//
// Required flags:
//
//	-input string     Path to the document input (YAML or JSON)
//	-output string    Output path, or gs://bucket/object
//
// Options:
//
//	-config string       Settings file (layout, logo, stationery)
//	-format string       Output format: pdf, svg or png (default from settings)
//	-logo string         Branch logo image, overrides the input and settings
//	-stationery string   One-page PDF drawn behind every page
//	-credentials string  Service account file for gs:// outputs
//	-validate            Inspect the finished PDF
//	-overwrite           Overwrite the output if it already exists
//	-v                   Verbose logging
//
// Examples:
//
//	blgen -input house.yml -output HBL-55.pdf
//	blgen -input house.json -format svg -output gs://documents/bl/HBL-55.svg
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"

	"github.com/gardar/shipdoc/pkg/artifact"
	"github.com/gardar/shipdoc/pkg/render"
)

func main() {
	inputPath := flag.String("input", "", "Path to the document input (YAML or JSON)")
	outputPath := flag.String("output", "", "Output path, or gs://bucket/object")
	configPath := flag.String("config", "", "Path to a settings file")
	format := flag.String("format", "", "Output format: pdf, svg or png")
	logoPath := flag.String("logo", "", "Branch logo image")
	stationeryPath := flag.String("stationery", "", "One-page PDF drawn behind every page")
	credentials := flag.String("credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"), "Service account file for gs:// outputs")
	validate := flag.Bool("validate", false, "Inspect the finished PDF")
	overwrite := flag.Bool("overwrite", false, "Overwrite the output if it already exists")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *inputPath == "" || *outputPath == "" {
		fmt.Println("Error: Must provide -input and -output")
		flag.Usage()
		os.Exit(1)
	}

	settings, err := render.LoadSettings(*configPath)
	if err != nil {
		fmt.Printf("Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	if *format != "" {
		settings.Format = *format
	}
	if *stationeryPath != "" {
		settings.Stationery = *stationeryPath
	}
	if *credentials != "" {
		settings.Credentials = *credentials
	}
	settings.Validate = settings.Validate || *validate

	opts, err := settings.Options()
	if err != nil {
		fmt.Printf("Invalid settings: %v\n", err)
		os.Exit(1)
	}
	if *logoPath != "" {
		if opts.Logo, err = os.ReadFile(*logoPath); err != nil {
			fmt.Printf("Failed to read logo: %v\n", err)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read input: %v\n", err)
		os.Exit(1)
	}
	in, err := render.ParseInput(data)
	if err != nil {
		fmt.Printf("Invalid input: %v\n", err)
		os.Exit(1)
	}

	doc, err := render.Document(in, opts)
	if err != nil {
		fmt.Printf("Error rendering document: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var clientOpts []option.ClientOption
	if settings.Credentials != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(settings.Credentials))
	}
	sink, name, err := artifact.Open(ctx, *outputPath, *overwrite, clientOpts...)
	if err != nil {
		fmt.Printf("Failed to open output: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	location, err := sink.Write(ctx, name, doc.ContentType, doc.Artifact)
	if err != nil {
		fmt.Printf("Failed to write output: %v\n", err)
		if errors.Is(err, artifact.ErrExists) {
			fmt.Println("Use -overwrite to replace an existing output.")
		}
		sink.Close()
		os.Exit(1)
	}
	fmt.Printf("✅ %d-page bill of lading written to %s\n", doc.PageCount(), location)
}
