// Package processor runs the batch conversions described in the configuration.
package processor

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geowkt/internal/config"
	"github.com/woozymasta/geowkt/internal/convert"
	"github.com/woozymasta/geowkt/internal/geo"
	"github.com/woozymasta/geowkt/internal/wkt"
)

// Processor converts job inputs into job outputs.
type Processor struct {
	Client    *http.Client
	Converter *convert.Converter
	Force     bool // overwrite existing outputs
}

// Result reports what happened to one job.
type Result struct {
	Err      error
	Job      string
	Output   string
	Skipped  bool
	Duration time.Duration
}

// New returns a processor using client for URL inputs and WKT output rounded
// to precision decimal digits (-1 keeps all).
func New(client *http.Client, precision int, force bool) *Processor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Processor{
		Client:    client,
		Converter: convert.New(precision),
		Force:     force,
	}
}

type task struct {
	job   config.Job
	index int
}

// Run executes jobs on up to concurrency workers. Results keep job order.
func (p *Processor) Run(jobs []config.Job, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}

	tasks := make(chan task, len(jobs))
	results := make([]Result, len(jobs))

	go func() {
		for i, j := range jobs {
			tasks <- task{job: j, index: i}
		}
		close(tasks)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				results[t.index] = p.RunJob(t.job)
			}
		}()
	}
	wg.Wait()

	return results
}

// RunJob reads, converts and writes a single job.
func (p *Processor) RunJob(j config.Job) Result {
	start := time.Now()
	res := Result{Job: j.Name, Output: j.Output}

	if !p.Force && j.Output != "" && j.Output != "-" {
		if info, err := os.Stat(j.Output); err == nil && info.Size() > 0 {
			log.Debug().Str("job", j.Name).Str("output", j.Output).Msg("Output exists, skipping")
			res.Skipped = true
			return res
		}
	}

	if err := j.Validate(); err != nil {
		res.Err = err
		return res
	}

	input, err := ReadSource(p.Client, j.Input)
	if err != nil {
		res.Err = fmt.Errorf("job %q: read %s: %w", j.Name, j.Input, err)
		return res
	}

	out, err := p.Convert(j, input)
	if err != nil {
		res.Err = fmt.Errorf("job %q: %w", j.Name, err)
		return res
	}

	if err := WriteOutput(j.Output, out); err != nil {
		res.Err = fmt.Errorf("job %q: write %s: %w", j.Name, j.Output, err)
		return res
	}

	res.Duration = time.Since(start)
	log.Info().
		Str("job", j.Name).
		Str("mode", string(j.Mode)).
		Str("output", j.Output).
		Dur("duration", res.Duration).
		Msg("Job finished")

	return res
}

// Convert turns raw input into the job's output bytes.
func (p *Processor) Convert(j config.Job, input []byte) ([]byte, error) {
	switch j.Mode {
	case config.ModeWKT, config.ModeWKB, config.ModeRecords, config.ModeReduce:
		obj, err := DecodeGeoJSON(j.Input, input)
		if err != nil {
			return nil, err
		}
		return p.convertGeoJSON(j, obj)

	case config.ModeGeoJSON:
		obj, err := wkt.DecodeText(string(input), j.AsFeature, j.Properties)
		if err != nil {
			return nil, err
		}
		return MarshalObject(obj, j.Format, j.Minify)

	case config.Mode2D:
		return ConvertLines(string(input), p.Converter.WKTTo2D)
	}
	return nil, fmt.Errorf("unknown mode %q", j.Mode)
}

func (p *Processor) convertGeoJSON(j config.Job, obj geo.Object) ([]byte, error) {
	switch j.Mode {
	case config.ModeWKT:
		text, err := p.Converter.Encode(obj)
		if err != nil {
			return nil, err
		}
		return []byte(text + "\n"), nil

	case config.ModeWKB:
		hex, err := wkt.EncodeWKBHex(obj, binary.LittleEndian)
		if err != nil {
			return nil, err
		}
		return []byte(hex + "\n"), nil

	case config.ModeRecords:
		fc, ok := obj.(*geo.FeatureCollection)
		if !ok {
			return nil, fmt.Errorf("records need a FeatureCollection, got %s", obj.GeoJSONType())
		}
		records, err := p.Converter.Records(*fc)
		if err != nil {
			return nil, err
		}
		return MarshalRecords(records, j.Format, j.Minify)

	case config.ModeReduce:
		flat, err := geo.ReduceToTwoD(obj)
		if err != nil {
			return nil, err
		}
		return MarshalObject(flat, j.Format, j.Minify)
	}
	return nil, fmt.Errorf("mode %q does not take GeoJSON input", j.Mode)
}

// ConvertLines applies fn to every non-blank line of text and joins the
// results one per line.
func ConvertLines(text string, fn func(string) (string, error)) ([]byte, error) {
	var b strings.Builder
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out, err := fn(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}
