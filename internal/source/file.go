package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/pickwise/internal/model"
)

// FileSource serves evidence captured earlier in a YAML or JSON file.
// The same evidence is returned for every request.
type FileSource struct {
	evidence model.Evidence
}

// LoadFile reads evidence from path; the extension picks the decoder
// (.json for JSON, anything else YAML)
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read evidence file: %w", err)
	}

	var ev model.Evidence
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &ev)
	} else {
		err = yaml.Unmarshal(data, &ev)
	}
	if err != nil {
		return nil, fmt.Errorf("parse evidence file %s: %w", path, err)
	}
	return &FileSource{evidence: ev}, nil
}

// NewFileSource wraps in-memory evidence
func NewFileSource(ev model.Evidence) *FileSource {
	return &FileSource{evidence: ev}
}

// Threads returns the file's forum threads
func (f *FileSource) Threads(ctx context.Context, req model.Request) ([]model.ForumThread, error) {
	return f.evidence.Threads, nil
}

// Videos returns the file's videos
func (f *FileSource) Videos(ctx context.Context, req model.Request) ([]model.Video, error) {
	return f.evidence.Videos, nil
}
