package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/convert"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Converter *convert.Converter
}

// NewServerContext fills in request limits and builds the shared converter.
func NewServerContext(cfg *config.Config) *ServerContext {
	if cfg == nil {
		cfg = &config.Config{Precision: -1}
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.DefaultMaxBodyBytes
	}

	log.Info().
		Int64("max_body_bytes", cfg.MaxBodyBytes).
		Int("precision", cfg.Precision).
		Msg("Server context initialized")

	return &ServerContext{
		Config:    cfg,
		Converter: convert.New(cfg.Precision),
	}
}

// Routes registers every API endpoint on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.HandleHealth)
	mux.HandleFunc("/api/wkt", s.HandleWKT)
	mux.HandleFunc("/api/records", s.HandleRecords)
	mux.HandleFunc("/api/geojson", s.HandleGeoJSON)
	mux.HandleFunc("/api/2d", s.Handle2D)
	mux.HandleFunc("/api/reduce", s.HandleReduce)
	return mux
}
