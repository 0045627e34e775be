package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/mat-schedule/internal/match"
)

// DefaultFile is the data file name the team website reads
const DefaultFile = "wrestling_data.json"

// Storage reads and writes data files under one directory
type Storage struct {
	dataDir string
}

// New creates a new Storage instance, creating dataDir if needed
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns the full path of a data file
func (s *Storage) Path(file string) string {
	if file == "" {
		file = DefaultFile
	}
	return filepath.Join(s.dataDir, file)
}

// Load reads a data file. A missing file yields an empty result.
func (s *Storage) Load(file string) (*match.ScrapeResult, error) {
	data, err := os.ReadFile(s.Path(file))
	if err != nil {
		if os.IsNotExist(err) {
			return match.NewScrapeResult(match.Metadata{}), nil
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	var result match.ScrapeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	result.EnsureSections()

	return &result, nil
}

// Save writes result to a data file, replacing it atomically
func (s *Storage) Save(result *match.ScrapeResult, file string) error {
	result.EnsureSections()

	data, err := Encode(result)
	if err != nil {
		return err
	}

	path := s.Path(file)
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing data file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting data file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}

	return nil
}

// Encode renders a result as indented JSON. Non-ASCII text and HTML
// characters are written as-is.
func Encode(result *match.ScrapeResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("encoding data file: %w", err)
	}
	return buf.Bytes(), nil
}
