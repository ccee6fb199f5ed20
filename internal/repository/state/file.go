package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/patient-monitor/internal/api/grpc/notifier"
	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// Repository defines persistence operations for the patient report.
type Repository interface {
	Load(ctx context.Context) (*patient.Report, error)
	Save(ctx context.Context, report *patient.Report) error
}

// FileRepository persists the report to a JSON file.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

var (
	// ErrNotFound is returned when the state file does not exist yet.
	ErrNotFound = errors.New("state not found")

	errReportRequired = errors.New("report must be provided")
)

// NewFileRepository creates a repository backed by path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the report from disk.
func (r *FileRepository) Load(_ context.Context) (*patient.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read state file: %w", err)
	}

	var s structpb.Struct
	if err = protojson.Unmarshal(contents, &s); err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	report, err := notifier.DecodeReport(&s)
	if err != nil {
		return nil, fmt.Errorf("decode state file: %w", err)
	}

	return report, nil
}

// Save replaces the file with report. The new contents are written to a
// temporary file first and renamed over the old one.
func (r *FileRepository) Save(_ context.Context, report *patient.Report) error {
	if report == nil {
		return errReportRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := notifier.EncodeReport(report)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
