// Package dataset locates the reference CSV files the seeder loads.
package dataset

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/pkg/errors"
)

const (
	MaterialsFile           = "materials.csv"
	ConditionsFile          = "conditions.csv"
	ConditionPropertiesFile = "condition_properties.csv"
	CurvesFile              = "curves.csv"
	CurvePointsFile         = "curve_points.csv"
)

// Files lists the dataset files in load order.
var Files = []string{
	MaterialsFile,
	ConditionsFile,
	ConditionPropertiesFile,
	CurvesFile,
	CurvePointsFile,
}

const (
	KindEmbedded = "embedded"
	KindDir      = "dir"
	KindS3       = "s3"
)

//go:embed data/*.csv
var embedded embed.FS

// ErrNotFound is returned when a dataset file does not exist at the source.
var ErrNotFound = errors.New("dataset file not found")

// Source opens dataset files by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// FSSource reads dataset files from a file system.
type FSSource struct {
	fsys  fs.FS
	label string
}

func NewFSSource(fsys fs.FS, label string) *FSSource {
	return &FSSource{fsys: fsys, label: label}
}

// Embedded returns the reference dataset compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return NewFSSource(sub, KindEmbedded)
}

// NewDirSource reads dataset files from a local directory.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), "dir:"+dir)
}

func (s *FSSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := s.fsys.Open(path.Clean(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNotFound, "%s in %s", name, s.label)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s in %s", name, s.label)
	}
	return f, nil
}

func (s *FSSource) String() string {
	return s.label
}

// Options selects and configures a Source.
type Options struct {
	Kind string
	Dir  string
	S3   S3Config
}

// New builds the Source described by opts.
func New(ctx context.Context, opts Options) (Source, error) {
	switch opts.Kind {
	case KindEmbedded, "":
		return Embedded(), nil
	case KindDir:
		if opts.Dir == "" {
			return nil, errors.New("dataset directory required")
		}
		return NewDirSource(opts.Dir), nil
	case KindS3:
		return NewS3Source(ctx, opts.S3)
	default:
		return nil, errors.Errorf("unsupported dataset source %q", opts.Kind)
	}
}
