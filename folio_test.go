package folio

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/views"
)

func mdFile(title, date, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\ntitle: " + title + "\ndate: " + date + "\n---\n" + body)}
}

func testFiles() fstest.MapFS {
	return fstest.MapFS{
		"hello.md": mdFile("Hello", "2020-01-01", "# Hi\n\n```js\nconsole.log(1)\n```"),
		"b.md":     mdFile("B", "2021-06-01", "second"),
		"a.md":     mdFile("A", "2021-06-02", "first"),
	}
}

func testConfig() Config {
	return Config{
		Site: views.SiteConfig{
			Name:        "Test Site",
			URL:         "https://example.com",
			Description: "Posts for tests",
			Author:      "Tester",
		},
		Bio: views.Bio{
			Intro: "Hello, my name is Tester.",
			Links: []views.BioLink{{Label: "My GitHub repository is located", Text: "here", URL: "https://github.com/tester"}},
		},
		ContentDir: "testdata",
		LogLevel:   "off",
		Markdown:   MarkdownConfig{UnsafeHTML: true},
	}
}

func newTestApp(t *testing.T, files fstest.MapFS, opts ...Option) *App {
	t.Helper()
	logger := NewLogger("off")
	logger.SetOutput(io.Discard)
	opts = append([]Option{WithContentFS(files), WithLogger(logger)}, opts...)
	app, err := New(testConfig(), opts...)
	require.NoError(t, err)
	return app
}
