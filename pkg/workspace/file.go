package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
)

// FileStore persists the global graph as a single JSON document on disk.
// Writes go through a temp file and rename so a crash never leaves a
// half-written snapshot.
type FileStore struct {
	path string
}

// FileStoreParams contains configuration for creating a FileStore.
type FileStoreParams struct {
	Path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(params FileStoreParams) *FileStore {
	return &FileStore{path: params.Path}
}

func (s *FileStore) Save(ctx context.Context, graph *gsw.GlobalGraph) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal workspace snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (*gsw.GlobalGraph, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("[Workspace] No snapshot found, starting fresh", "path", s.path)
			return gsw.NewGlobalGraph(), nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	graph := gsw.NewGlobalGraph()
	if err := json.Unmarshal(data, graph); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return graph, nil
}
