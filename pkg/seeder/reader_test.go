package seeder

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReader(t *testing.T) {
	t.Run("addresses fields by header name", func(t *testing.T) {
		r, err := newRecordReader(strings.NewReader("name,id\n Test Alloy ,1\n,2\n"), []string{"id", "name"})
		require.NoError(t, err)

		require.NoError(t, r.Next())
		id, err := r.ID("id")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		assert.Equal(t, "Test Alloy", *r.Text("name"))
		assert.Equal(t, 2, r.Line())

		require.NoError(t, r.Next())
		assert.Nil(t, r.Text("name"))

		assert.ErrorIs(t, r.Next(), io.EOF)
	})

	t.Run("strips a byte order mark", func(t *testing.T) {
		r, err := newRecordReader(strings.NewReader("\ufeffid,name\n7,x\n"), []string{"id"})
		require.NoError(t, err)
		require.NoError(t, r.Next())

		id, err := r.ID("id")
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("quoted fields", func(t *testing.T) {
		r, err := newRecordReader(strings.NewReader("id,tags\n1,\"a,b\"\n"), []string{"id", "tags"})
		require.NoError(t, err)
		require.NoError(t, r.Next())
		assert.Equal(t, "a,b", *r.Text("tags"))
	})

	t.Run("missing required column", func(t *testing.T) {
		_, err := newRecordReader(strings.NewReader("id\n1\n"), []string{"id", "name", "density"})
		assert.ErrorContains(t, err, "missing columns: name, density")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := newRecordReader(strings.NewReader(""), []string{"id"})
		assert.ErrorContains(t, err, "missing header row")
	})

	t.Run("ragged rows fail", func(t *testing.T) {
		r, err := newRecordReader(strings.NewReader("id,name\n1\n"), []string{"id"})
		require.NoError(t, err)
		assert.Error(t, r.Next())
	})
}
