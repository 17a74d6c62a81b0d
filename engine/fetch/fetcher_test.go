package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/assets/cube.obj", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("v 0 0 0\n"))
	})
	mux.HandleFunc("/assets/textures/bad.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetchText(t *testing.T) {
	srv := newAssetServer(t)

	f, err := NewFetcher(WithOrigin(srv.URL))
	require.NoError(t, err)

	text, err := f.FetchText(context.Background(), "cube.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0\n", text)
}

func TestHTTPResolveUsesAssetsDir(t *testing.T) {
	f, err := NewFetcher(WithOrigin("https://example.com/app/"))
	require.NoError(t, err)

	loc, err := f.Resolve("textures/wall.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/app/assets/textures/wall.png", loc)
}

func TestHTTPFetchNotFound(t *testing.T) {
	srv := newAssetServer(t)

	f, err := NewFetcher(WithOrigin(srv.URL))
	require.NoError(t, err)

	_, err = f.FetchBinary(context.Background(), "missing.png")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "missing.png", fe.Name)
	assert.Contains(t, fe.Reason, "404")
}

func TestFetchTextRejectsInvalidUTF8(t *testing.T) {
	srv := newAssetServer(t)

	f, err := NewFetcher(WithOrigin(srv.URL))
	require.NoError(t, err)

	_, err = f.FetchText(context.Background(), "textures/bad.txt")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))

	data, err := f.FetchBinary(context.Background(), "textures/bad.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe, 0xfd}, data)
}

func TestHTTPTransportFailure(t *testing.T) {
	srv := newAssetServer(t)
	url := srv.URL
	srv.Close()

	f, err := NewFetcher(WithOrigin(url))
	require.NoError(t, err)

	_, err = f.FetchBinary(context.Background(), "cube.obj")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.NotNil(t, fe.Unwrap())
}

func TestFSFetch(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "sub", "a.mtl"), []byte("newmtl a\n"), 0644))

	for _, origin := range []string{root, "file://" + filepath.ToSlash(root)} {
		f, err := NewFetcher(WithOrigin(origin))
		require.NoError(t, err)

		text, err := f.FetchText(context.Background(), "sub/a.mtl")
		require.NoError(t, err, origin)
		assert.Equal(t, "newmtl a\n", text)
	}
}

func TestFSFetchMissing(t *testing.T) {
	f, err := NewFetcher(WithOrigin(t.TempDir()))
	require.NoError(t, err)

	_, err = f.FetchBinary(context.Background(), "nope.obj")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRejectsEscapingNames(t *testing.T) {
	f, err := NewFetcher(WithOrigin(t.TempDir()))
	require.NoError(t, err)

	for _, name := range []string{"", "../secret", "a/../../secret", "/etc/passwd"} {
		_, err := f.FetchBinary(context.Background(), name)
		var fe *FetchError
		assert.True(t, errors.As(err, &fe), "name %q", name)
	}
}

func TestUnsupportedScheme(t *testing.T) {
	_, err := NewFetcher(WithOrigin("ftp://example.com"))
	assert.Error(t, err)
}

type stubBackend struct {
	data map[string][]byte
}

func (s *stubBackend) Fetch(_ context.Context, rel string) ([]byte, error) {
	d, ok := s.data[rel]
	if !ok {
		return nil, errors.New("no such asset")
	}
	return d, nil
}

func (s *stubBackend) Locate(rel string) string { return "stub://" + rel }

func TestBackendErrorWrapped(t *testing.T) {
	f, err := NewFetcher(withBackend(&stubBackend{data: map[string][]byte{"assets/x": []byte("x")}}))
	require.NoError(t, err)

	data, err := f.FetchBinary(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), data)

	_, err = f.FetchBinary(context.Background(), "y")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "stub://assets/y", fe.Location)
}
