package main

import (
	"crypto/tls"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/logger"
	"github.com/woozymasta/geowkt/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_NAMES" description:"Limit processing to specific job names"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
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

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
		},
		Timeout: 15 * time.Second,
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}

	// Filter jobs if limit is set
	jobs := cfg.Jobs
	if len(opts.Limit) > 0 {
		jobs = make([]config.Job, 0)
		available := make(map[string]config.Job)
		for _, j := range cfg.Jobs {
			available[j.Name] = j
		}

		seen := make(map[string]bool)

		for _, name := range opts.Limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			if j, ok := available[name]; ok {
				jobs = append(jobs, j)
			} else {
				log.Error().
					Str("name", name).
					Msg("Job specified in --limit not found in configuration")
			}
		}
	}

	log.Info().
		Int("jobs_total", len(cfg.Jobs)).
		Int("jobs_queued", len(jobs)).
		Int("precision", cfg.Precision).
		Msg("Starting batch")

	p := processor.New(client, cfg.Precision, opts.Force)
	failed := 0
	for _, res := range p.Run(jobs, opts.Concurrency) {
		if res.Err != nil {
			failed++
			log.Error().Err(res.Err).Str("job", res.Job).Msg("Job failed")
		}
	}

	if failed > 0 {
		log.Fatal().Int("failed", failed).Msg("Batch finished with errors")
	}
	log.Info().Msg("Batch finished successfully")
}
