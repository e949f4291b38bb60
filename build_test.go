package folio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

func readOut(t *testing.T, dir string, parts ...string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(append([]string{dir}, parts...)...))
	require.NoError(t, err)
	return string(b)
}

func TestBuild(t *testing.T) {
	app := newTestApp(t, testFiles())
	out := t.TempDir()

	require.NoError(t, app.Build(context.Background(), BuildOptions{OutDir: out, Workers: 2}))

	home := readOut(t, out, "index.html")
	assert.Contains(t, home, `href="/posts/hello/"`)

	post := readOut(t, out, "posts", "hello", "index.html")
	assert.Contains(t, post, `data-lang="js"`)
	assert.Contains(t, readOut(t, out, "posts", "a", "index.html"), "first")
	assert.Contains(t, readOut(t, out, "posts", "b", "index.html"), "second")

	assert.Contains(t, readOut(t, out, "feed.xml"), "<rss")
	assert.Contains(t, readOut(t, out, "sitemap.xml"), "<urlset")
	assert.Contains(t, readOut(t, out, "public", "chroma.css"), ".chroma")
	assert.NotEmpty(t, readOut(t, out, "public", "site.css"))
}

func TestBuildContinuesPastBadPost(t *testing.T) {
	files := testFiles()
	files["broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Broken\n---\nno date")}
	app := newTestApp(t, files)
	out := t.TempDir()

	err := app.Build(context.Background(), BuildOptions{OutDir: out})
	require.Error(t, err)

	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	require.Len(t, buildErr.Failed, 1)
	assert.ErrorIs(t, buildErr.Failed["broken"], content.ErrMalformedFrontMatter)
	assert.Contains(t, err.Error(), "broken")

	for _, id := range []string{"a", "b", "hello"} {
		_, statErr := os.Stat(filepath.Join(out, "posts", id, "index.html"))
		assert.NoError(t, statErr, "post %q", id)
	}
	_, statErr := os.Stat(filepath.Join(out, "posts", "broken"))
	assert.True(t, os.IsNotExist(statErr))
	assert.FileExists(t, filepath.Join(out, "index.html"))
}

func TestBuildStrict(t *testing.T) {
	files := testFiles()
	files["broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: Broken\n---\n")}
	app := newTestApp(t, files)

	err := app.Build(context.Background(), BuildOptions{OutDir: t.TempDir(), Strict: true})
	var buildErr *BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Contains(t, buildErr.Failed, "")
	assert.Contains(t, buildErr.Failed, "broken")
	assert.Contains(t, err.Error(), "index")
}

func TestBuildStoreUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.ContentDir = filepath.Join(t.TempDir(), "missing")
	app, err := New(cfg, WithLogger(NewLogger("off")))
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "site")

	err = app.Build(context.Background(), BuildOptions{OutDir: out})
	assert.ErrorIs(t, err, content.ErrStoreUnavailable)
	assert.NoDirExists(t, out)
}

func TestBuildEmptyStore(t *testing.T) {
	cfg := testConfig()
	cfg.ContentDir = t.TempDir()
	app, err := New(cfg, WithLogger(NewLogger("off")))
	require.NoError(t, err)
	out := t.TempDir()

	require.NoError(t, app.Build(context.Background(), BuildOptions{OutDir: out}))
	assert.Contains(t, readOut(t, out, "index.html"), "No posts yet.")
}

func TestBuildCancelled(t *testing.T) {
	app := newTestApp(t, testFiles())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.Build(ctx, BuildOptions{OutDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildDropsRemovedPosts(t *testing.T) {
	files := testFiles()
	out := t.TempDir()
	require.NoError(t, newTestApp(t, files).Build(context.Background(), BuildOptions{OutDir: out}))
	require.FileExists(t, filepath.Join(out, "posts", "a", "index.html"))

	delete(files, "a.md")
	require.NoError(t, newTestApp(t, files).Build(context.Background(), BuildOptions{OutDir: out}))

	assert.NoDirExists(t, filepath.Join(out, "posts", "a"))
	assert.FileExists(t, filepath.Join(out, "posts", "b", "index.html"))
	assert.NotContains(t, readOut(t, out, "index.html"), `href="/posts/a/"`)
}
