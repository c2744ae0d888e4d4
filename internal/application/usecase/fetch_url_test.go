package usecase_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/slickdir/internal/application/usecase"
	"github.com/bnema/slickdir/internal/infrastructure/filesystem"
	"github.com/bnema/slickdir/internal/infrastructure/imaging"
)

func newFetcher(srv *httptest.Server) *usecase.FetchURLUseCase {
	return usecase.NewFetchURLUseCase(filesystem.New(), srv.Client(), imaging.NewCodec())
}

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchURL_ImageContentTypeNaming(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	data := pngBytes(t)
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	})

	out, err := newFetcher(srv).Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: srv.URL + "/x"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, out.StatusCode)
	assert.Equal(t, filepath.Join(dir, "clipboard.png"), out.ResponsePath)
	assert.Empty(t, out.TranscodedPath)
	assert.Equal(t, []string{"clipboard.png", "clipboard.url"}, listFiles(t, dir))
	assert.Equal(t, "[InternetShortcut]\nURL="+srv.URL+"/x", readFile(t, filepath.Join(dir, "clipboard.url")))
	assert.Equal(t, string(data), readFile(t, out.ResponsePath))
}

func TestFetchURL_NonPNGImageGetsPNGCopy(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg; charset=binary")
		_, _ = w.Write(jpegBytes(t))
	})

	out, err := newFetcher(srv).Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "clipboard.png"), out.TranscodedPath)
	assert.Equal(t, []string{"clipboard.jpeg", "clipboard.png", "clipboard.url"}, listFiles(t, dir))
}

func TestFetchURL_ContentDispositionWins(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="../../report.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	out, err := newFetcher(srv).Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "report.pdf"), out.ResponsePath)
	assert.Empty(t, out.TranscodedPath)
	assert.Equal(t, []string{"clipboard.url", "report.pdf"}, listFiles(t, dir))
}

func TestFetchURL_PlainResponse(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})

	out, err := newFetcher(srv).Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "clipboard.url.response"), out.ResponsePath)
	assert.Equal(t, "<html></html>", readFile(t, out.ResponsePath))
}

func TestFetchURL_RejectedStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "body kept", body: "not here", want: "not here"},
		{name: "empty body marker", body: "", want: "rejected 500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			dir := t.TempDir()
			status := http.StatusNotFound
			if tt.body == "" {
				status = http.StatusInternalServerError
			}
			srv := serve(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(tt.body))
			})

			out, err := newFetcher(srv).Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: srv.URL})
			require.NoError(t, err)

			assert.True(t, out.Rejected)
			assert.Equal(t, status, out.StatusCode)
			assert.Equal(t, tt.want, readFile(t, filepath.Join(dir, "clipboard.url.response")))
		})
	}
}

func TestFetchURL_InvalidURL(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	uc := usecase.NewFetchURLUseCase(filesystem.New(), http.DefaultClient, imaging.NewCodec())

	for _, raw := range []string{"not a url", "ftp://example.com/file", "https://"} {
		_, err := uc.Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: raw})
		assert.ErrorIs(t, err, usecase.ErrInvalidURL, raw)
	}
	assert.Empty(t, listFiles(t, dir))
}

func TestFetchURL_NetworkErrorKeepsShortcut(t *testing.T) {
	ctx := testContext()
	dir := t.TempDir()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out, err := usecase.NewFetchURLUseCase(filesystem.New(), http.DefaultClient, imaging.NewCodec()).
		Execute(ctx, usecase.FetchURLInput{TargetDir: dir, URL: url})

	require.Error(t, err)
	require.NotNil(t, out)
	assert.Equal(t, []string{"clipboard.url"}, listFiles(t, dir))
}
