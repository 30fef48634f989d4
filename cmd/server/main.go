package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/logger"
	"github.com/woozymasta/geowkt/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile   string `short:"c" long:"config"         env:"CONFIG_FILE"    description:"Path to configuration file, optional"`
	Addr         string `short:"a" long:"addr"           env:"LISTEN_ADDRESS" description:"Address to listen on"  default:"0.0.0.0"`
	Port         int    `short:"p" long:"port"           env:"LISTEN_PORT"    description:"Port to listen on"     default:"8080"`
	Precision    int    `short:"P" long:"precision"      env:"WKT_PRECISION"  description:"Max decimal digits in WKT, -1 keeps all" default:"-1"`
	MaxBodyBytes int64  `short:"m" long:"max-body-bytes" env:"MAX_BODY_BYTES" description:"Request body limit in bytes" default:"10485760"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := loadConfig(parser, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	srvCtx := server.NewServerContext(cfg)
	handler := server.RequestLogger(srvCtx.Routes())

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Int("precision", cfg.Precision).
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Msg("Web server started")

	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// loadConfig builds the server config from flags alone, or from the config
// file when one is given. Flags passed on the command line win over the file.
func loadConfig(parser *flags.Parser, opts Options) (*config.Config, error) {
	if opts.ConfigFile == "" {
		return &config.Config{Precision: opts.Precision, MaxBodyBytes: opts.MaxBodyBytes}, nil
	}

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if explicit(parser, "precision") {
		cfg.Precision = opts.Precision
	}
	if explicit(parser, "max-body-bytes") {
		cfg.MaxBodyBytes = opts.MaxBodyBytes
	}
	return cfg, nil
}

// explicit reports whether the long option was given on the command line
// rather than taken from its default.
func explicit(parser *flags.Parser, long string) bool {
	opt := parser.FindOptionByLongName(long)
	return opt != nil && opt.IsSet() && !opt.IsSetDefault()
}
