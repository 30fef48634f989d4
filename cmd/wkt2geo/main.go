package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/logger"
	"github.com/woozymasta/geowkt/internal/processor"
	"github.com/woozymasta/geowkt/internal/wkt"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string   `short:"i" long:"in"        description:"Input WKT or hex WKB file or URL. Reads from stdin if empty"`
	Output    string   `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string   `short:"f" long:"format"    description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Feature   bool     `short:"F" long:"feature"   description:"Wrap the geometry in a Feature"`
	Props     []string `short:"P" long:"prop"      description:"Feature property as key:value, implies --feature"`
	Minify    bool     `short:"M" long:"minify"    description:"Minify JSON output"`
	Precision int      `short:"p" long:"precision" description:"Significant digits kept in minified JSON numbers, 0 keeps all" default:"0"`
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

	props, err := parseProps(opts.Props)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid --prop")
	}

	p := processor.New(nil, -1, true)
	input, err := processor.ReadSource(p.Client, opts.Input)
	if err != nil {
		log.Fatal().Err(err).Str("input", opts.Input).Msg("Failed to read input")
	}

	obj, err := wkt.DecodeText(string(input), opts.Feature || len(props) > 0, props)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode WKT")
	}

	out, err := processor.MarshalObject(obj, opts.Format, false)
	if err == nil && opts.Minify && opts.Format == config.FormatJSON {
		out, err = processor.MinifyJSONPrecision(out, opts.Precision)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal GeoJSON")
	}

	if err := processor.WriteOutput(opts.Output, out); err != nil {
		log.Fatal().Err(err).Str("output", opts.Output).Msg("Failed to write output")
	}
}

// parseProps turns key:value pairs into properties. Values that parse as
// JSON keep their type; anything else is a string.
func parseProps(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	props := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key:value, got %s", strconv.Quote(pair))
		}

		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = raw
		}
		props[key] = v
	}
	return props, nil
}
