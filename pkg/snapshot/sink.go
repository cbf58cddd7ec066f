package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/dotrender/internal/errors"
)

// Sink stores named blobs.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Sink kinds accepted by Open.
const (
	KindFile = "file"
	KindS3   = "s3"
)

// Options selects and configures a sink for Open.
type Options struct {
	Kind string
	Dir  string
	S3   S3Config
}

// Open builds the sink described by opts.
func Open(opts Options) (Sink, error) {
	switch opts.Kind {
	case KindFile, "":
		return NewFileSink(opts.Dir)
	case KindS3:
		return NewS3Sink(NewS3Client(opts.S3), opts.S3.Bucket, opts.S3.Prefix), nil
	default:
		return nil, errors.New("S002").WithDetailf("unknown sink %q", opts.Kind)
	}
}

// FileSink writes blobs as files in a directory.
type FileSink struct {
	dir string
}

// NewFileSink creates dir if needed and returns a sink writing into it.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("S001").WithOp("MkdirAll").Wrap(err)
	}
	return &FileSink{dir: dir}, nil
}

// Dir returns the target directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Path returns the file a blob named name is written to.
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Put writes data to a temporary file and renames it into place, so
// readers never see a partial snapshot.
func (s *FileSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// checkName rejects names that would escape the sink's directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("snapshot: invalid name %q", name)
	}
	return nil
}
