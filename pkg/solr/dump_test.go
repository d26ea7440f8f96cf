package solr

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/iziplay/vufind-api/pkg/vufind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `{"id": "1", "title": ["Faust"]}

{"id": "2", "title": ["Werther"]}
this is not json
{"id": "3", "title": ["Egmont"]}`

type collector struct {
	docs  []vufind.Document
	stats []float64
}

func (c *collector) Stats(ctx context.Context, path string, percent float64) {
	c.stats = append(c.stats, percent)
}

func (c *collector) Document(ctx context.Context, doc vufind.Document) {
	c.docs = append(c.docs, doc)
}

func writeDump(t *testing.T, name string, compress bool) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	if compress {
		gz := gzip.NewWriter(f)
		_, err = gz.Write([]byte(dump))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
	} else {
		_, err = f.Write([]byte(dump))
		require.NoError(t, err)
	}
	return p
}

func TestProcessFile(t *testing.T) {
	for _, compress := range []bool{false, true} {
		p := writeDump(t, "records.ndjson", compress)
		c := &collector{}
		result := ProcessFile(context.Background(), p, Options{}, c)

		require.NoError(t, result.Error)
		assert.Equal(t, 3, result.RecordCount)
		assert.Equal(t, 1, result.Skipped)
		require.Len(t, c.docs, 3)
		assert.Equal(t, "3", c.docs[2]["id"])
		assert.Equal(t, []float64{100}, c.stats)
	}
}

func TestProcessFileMissing(t *testing.T) {
	result := ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{}, &collector{})
	assert.Error(t, result.Error)
}

func TestProcessFileCancelled(t *testing.T) {
	p := writeDump(t, "records.ndjson", false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &collector{}
	result := ProcessFile(ctx, p, Options{}, c)
	assert.ErrorIs(t, result.Error, context.Canceled)
	assert.Empty(t, c.docs)
}
