package alarms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/alarm-clock/internal/config"
)

// FileRepository persists the alarm list to a JSON file on disk.
// The file holds a plain JSON array of strings; it is produced and
// consumed through protojson as a google.protobuf.ListValue.
type FileRepository struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

// errNotString is returned when the file contains a non-string element.
var errNotString = errors.New("alarm entry is not a string")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the alarm list from disk. A missing file yields an empty list.
func (r *FileRepository) Load(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}

		return nil, fmt.Errorf("read alarms file: %w", err)
	}

	var list structpb.ListValue
	if err = protojson.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("decode alarms file: %w", err)
	}

	values := make([]string, 0, len(list.GetValues()))

	for i, item := range list.GetValues() {
		kind, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("decode alarms file: element %d: %w", i, errNotString)
		}

		values = append(values, kind.StringValue)
	}

	return values, nil
}

// Save overwrites the file with the provided list.
func (r *FileRepository) Save(_ context.Context, values []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := &structpb.ListValue{
		Values: make([]*structpb.Value, 0, len(values)),
	}

	for _, value := range values {
		list.Values = append(list.Values, structpb.NewStringValue(value))
	}

	data, err := protojson.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode alarms: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write alarms file: %w", err)
	}

	return nil
}

// Close is a no-op; the file is opened per call.
func (r *FileRepository) Close() error {
	return nil
}
