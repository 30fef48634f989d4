package main

import (
	"encoding/binary"
	"os"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/logger"
	"github.com/woozymasta/geowkt/internal/processor"
	"github.com/woozymasta/geowkt/internal/wkt"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string `short:"i" long:"in"        description:"Input GeoJSON file (.json or .yaml) or URL. Reads from stdin if empty"`
	Output    string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Mode      string `short:"m" long:"mode"      description:"Output kind" choice:"wkt" choice:"wkb" choice:"records" default:"wkt"`
	Format    string `short:"f" long:"format"    description:"Records format" choice:"json" choice:"yaml" choice:"csv" default:"json"`
	Precision int    `short:"p" long:"precision" env:"WKT_PRECISION" description:"Max decimal digits in WKT, -1 keeps all" default:"-1"`
	BigEndian bool   `short:"b" long:"big-endian" description:"Write WKB in big endian byte order"`
	Minify    bool   `short:"M" long:"minify"    description:"Minify JSON records"`
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

	var out []byte
	if opts.Mode == string(config.ModeWKB) && opts.BigEndian {
		out, err = bigEndianWKB(opts.Input, input)
	} else {
		out, err = p.Convert(config.Job{
			Name:   "geo2wkt",
			Input:  opts.Input,
			Mode:   config.Mode(opts.Mode),
			Format: opts.Format,
			Minify: opts.Minify,
		}, input)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to convert GeoJSON")
	}

	if err := processor.WriteOutput(opts.Output, out); err != nil {
		log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output")
	}

	if opts.Output != "" {
		log.Info().Str("output", opts.Output).Str("mode", opts.Mode).Msg("Converted GeoJSON")
	}
}

func bigEndianWKB(source string, input []byte) ([]byte, error) {
	obj, err := processor.DecodeGeoJSON(source, input)
	if err != nil {
		return nil, err
	}
	hex, err := wkt.EncodeWKBHex(obj, binary.BigEndian)
	if err != nil {
		return nil, err
	}
	return []byte(hex + "\n"), nil
}
