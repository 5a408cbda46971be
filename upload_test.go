package resultgen

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHost(t *testing.T) {
	t.Run("bare hostname gets scheme and port", func(t *testing.T) {
		u, err := ParseHost("localhost", true)
		require.NoError(t, err)
		assert.Equal(t, "http", u.Scheme)
		assert.Equal(t, "localhost:4318", u.Host)
	})

	t.Run("secure by default", func(t *testing.T) {
		u, err := ParseHost("collector.example.com", false)
		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
		assert.Equal(t, "collector.example.com:4318", u.Host)
	})

	t.Run("explicit port is kept", func(t *testing.T) {
		u, err := ParseHost("collector.example.com:9999", false)
		require.NoError(t, err)
		assert.Equal(t, "collector.example.com:9999", u.Host)
	})

	t.Run("explicit scheme wins over insecure flag", func(t *testing.T) {
		u, err := ParseHost("https://collector", true)
		require.NoError(t, err)
		assert.Equal(t, "https", u.Scheme)
	})
}

func TestUploader_Upload(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	u, err := ParseHost(server.URL, true)
	require.NoError(t, err)
	uploader := NewUploader(quietLogger(), u)

	payload := []byte(`{"resourceSpans":[]}`)
	require.NoError(t, uploader.Upload(payload))
	assert.Equal(t, "/v1/traces", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, payload, gotBody)
}

func TestUploader_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusInternalServerError)
	}))
	defer server.Close()

	u, err := ParseHost(server.URL, true)
	require.NoError(t, err)
	uploader := NewUploader(quietLogger(), u)
	assert.Error(t, uploader.Upload([]byte("{}")))
}

func TestTraceGenerator_UploadsEveryDocument(t *testing.T) {
	received := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	dir := t.TempDir()
	opts := traceOptions(dir, 1, 10, 5)
	opts.Upload.Host = server.URL
	opts.Upload.Insecure = true

	gen, err := NewTraceGenerator(quietLogger(), opts)
	require.NoError(t, err)
	require.NoError(t, gen.Run(1, 10))
	assert.Equal(t, 2, received, "one upload per JSON line")
}
