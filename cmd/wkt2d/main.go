package main

import (
	"os"

	"github.com/woozymasta/geowkt/internal/logger"
	"github.com/woozymasta/geowkt/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string `short:"i" long:"in"        description:"Input file or URL with one WKT per line. Reads from stdin if empty"`
	Output    string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Precision int    `short:"p" long:"precision" env:"WKT_PRECISION" description:"Max decimal digits in WKT, -1 keeps all" default:"-1"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	p := processor.New(nil, opts.Precision, true)
	input, err := processor.ReadSource(p.Client, opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read input")
	}

	out, err := processor.ConvertLines(string(input), p.Converter.WKTTo2D)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to convert WKT")
	}

	if err := processor.WriteOutput(opts.Output, out); err != nil {
		log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output")
	}
}
