package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src Source, name string) string {
	t.Helper()
	rc, err := src.Open(context.Background(), name)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestEmbedded(t *testing.T) {
	src := Embedded()

	for _, name := range Files {
		t.Run(name, func(t *testing.T) {
			rc, err := src.Open(context.Background(), name)
			require.NoError(t, err)
			defer rc.Close()

			records, err := csv.NewReader(rc).ReadAll()
			require.NoError(t, err)
			assert.Greater(t, len(records), 1, "expected a header and at least one row")
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := src.Open(context.Background(), "alloys.csv")
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestFSSource(t *testing.T) {
	src := NewFSSource(fstest.MapFS{
		"materials.csv": {Data: []byte("id,name\n1,Test Alloy\n")},
	}, "memory")

	assert.Equal(t, "id,name\n1,Test Alloy\n", readAll(t, src, MaterialsFile))
	assert.Equal(t, "memory", src.String())

	_, err := src.Open(context.Background(), CurvesFile)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConditionsFile), []byte("id\n10\n"), 0o600))

	src := NewDirSource(dir)
	assert.Equal(t, "id\n10\n", readAll(t, src, ConditionsFile))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	src, err := New(ctx, Options{})
	require.NoError(t, err)
	assert.Equal(t, KindEmbedded, src.String())

	_, err = New(ctx, Options{Kind: KindDir})
	assert.Error(t, err)

	src, err = New(ctx, Options{Kind: KindDir, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Contains(t, src.String(), "dir:")

	_, err = New(ctx, Options{Kind: KindS3})
	assert.Error(t, err)

	_, err = New(ctx, Options{Kind: "ftp"})
	assert.Error(t, err)
}
