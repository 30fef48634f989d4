// Package server exposes the converters over HTTP.
package server

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/geo"
	"github.com/woozymasta/geowkt/internal/processor"
	"github.com/woozymasta/geowkt/internal/wkt"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeGeoJSON = "application/geo+json"
	contentTypeText    = "text/plain; charset=utf-8"
)

// HandleHealth reports that the server is up.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, contentTypeJSON, map[string]string{"status": "ok"})
}

// HandleWKT converts a GeoJSON body to WKT, or to hex WKB with ?format=wkb.
func (s *ServerContext) HandleWKT(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.readGeoJSON(w, r)
	if !ok {
		return
	}

	var (
		out string
		err error
	)
	if r.URL.Query().Get("format") == "wkb" {
		out, err = wkt.EncodeWKBHex(obj, binary.LittleEndian)
	} else {
		out, err = s.Converter.Encode(obj)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeText(w, out)
}

// HandleRecords converts a FeatureCollection body to a JSON array of records.
func (s *ServerContext) HandleRecords(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.readGeoJSON(w, r)
	if !ok {
		return
	}

	fc, isCollection := obj.(*geo.FeatureCollection)
	if !isCollection {
		writeError(w, http.StatusBadRequest, wkt.ErrNotAFeatureCollection)
		return
	}

	records, err := s.Converter.Records(*fc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, contentTypeJSON, records)
}

// HandleGeoJSON converts a WKT body (hex WKB with ?format=wkb) to GeoJSON.
// ?feature=true wraps the geometry and ?properties=<json object> attaches
// properties to it.
func (s *ServerContext) HandleGeoJSON(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	asFeature, _ := strconv.ParseBool(q.Get("feature"))

	var props map[string]interface{}
	if raw := q.Get("properties"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		asFeature = true
	}

	var (
		obj geo.Object
		err error
	)
	text := strings.TrimSpace(string(body))
	if q.Get("format") == "wkb" {
		var g geo.Geometry
		g, err = wkt.DecodeWKBHex(text)
		obj = &g
		if err == nil && asFeature {
			f := geo.NewFeature(g, props)
			obj = &f
		}
	} else {
		obj, err = wkt.Decode(text, asFeature, props)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, contentTypeGeoJSON, obj)
}

// Handle2D strips Z from every WKT line of the body.
func (s *ServerContext) Handle2D(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	out, err := processor.ConvertLines(string(body), s.Converter.WKTTo2D)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeText(w, strings.TrimSuffix(string(out), "\n"))
}

// HandleReduce strips Z from a GeoJSON body.
func (s *ServerContext) HandleReduce(w http.ResponseWriter, r *http.Request) {
	obj, ok := s.readGeoJSON(w, r)
	if !ok {
		return
	}

	flat, err := geo.ReduceToTwoD(obj)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, contentTypeGeoJSON, flat)
}

func (s *ServerContext) readGeoJSON(w http.ResponseWriter, r *http.Request) (geo.Object, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}

	source := "body.json"
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		source = "body.yaml"
	}
	obj, err := processor.DecodeGeoJSON(source, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return obj, true
}

// readBody accepts POST bodies up to the configured limit.
func (s *ServerContext) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return nil, false
	}

	limit := s.Config.MaxBodyBytes
	if limit <= 0 {
		limit = config.DefaultMaxBodyBytes
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return body, true
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", contentTypeText)
	_, _ = io.WriteString(w, text)
}

func writeJSON(w http.ResponseWriter, status int, contentType string, v interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Debug().Err(err).Int("status", status).Msg("Request rejected")
	writeJSON(w, status, contentTypeJSON, map[string]string{"error": err.Error()})
}
