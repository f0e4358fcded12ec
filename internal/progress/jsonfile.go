package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/fileutil"
)

// FileName is the default name of the JSON progress file.
const FileName = "progress.json"

// FileStore keeps the record in a single JSON file.
type FileStore struct {
	path string
	log  *zap.SugaredLogger
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string, log *zap.SugaredLogger) *FileStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &FileStore{path: path, log: log, now: time.Now}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(_ context.Context) (*Record, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Infow("no progress file, starting fresh", "path", s.path)
		return NewRecord(s.now()), nil
	}
	if err != nil {
		s.log.Warnw("could not read progress file, starting fresh", "path", s.path, "error", err)
		return NewRecord(s.now()), nil
	}

	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		s.log.Warnw("corrupt progress file, starting fresh", "path", s.path, "error", err)
		return NewRecord(s.now()), nil
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.Normalize()
	return &r, nil
}

func (s *FileStore) Save(_ context.Context, r *Record) error {
	r.Normalize()
	r.UpdatedAt = s.now()

	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
