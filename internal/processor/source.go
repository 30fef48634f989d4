package processor

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadSource loads a job input: an http(s) URL, a file path, or stdin for
// "" and "-".
func ReadSource(client *http.Client, source string) ([]byte, error) {
	switch {
	case source == "" || source == "-":
		return io.ReadAll(os.Stdin)

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		log.Debug().Str("url", source).Msg("Downloading source")
		resp, err := client.Get(source)
		if err != nil {
			return nil, err
		}
		// Explicitly ignore close error as it's a read-only operation
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("download %s: status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)

	default:
		return os.ReadFile(source)
	}
}

// WriteOutput writes data to path, creating parent directories, or to stdout
// for "" and "-".
func WriteOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// isYAML tells YAML GeoJSON inputs apart by extension.
func isYAML(source string) bool {
	ext := strings.ToLower(filepath.Ext(source))
	return ext == ".yaml" || ext == ".yml"
}
