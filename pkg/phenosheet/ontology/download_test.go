package ontology

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTagPinned(t *testing.T) {
	d := NewDownloader()

	tag, err := d.ResolveTag(context.Background(), "2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, "v2025-03-03", tag)

	tag, err = d.ResolveTag(context.Background(), "v2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, "v2025-03-03", tag)
}

func TestResolveTagLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "v2025-05-06"}`))
	}))
	defer srv.Close()

	d := NewDownloader()
	d.latestURL = srv.URL

	tag, err := d.ResolveTag(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "v2025-05-06", tag)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"graphs": []}`))
	}))
	defer srv.Close()

	d := NewDownloader()
	d.assetURL = srv.URL + "/%s/hp.json"

	dir := t.TempDir()
	path, err := d.Download(context.Background(), "v2025-05-06", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"graphs": []}`, string(data))
}

func TestDownloadBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDownloader()
	d.assetURL = srv.URL + "/%s/hp.json"

	_, err := d.Download(context.Background(), "v0000-00-00", t.TempDir())
	assert.Error(t, err)
}
