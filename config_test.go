package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps LoadConfig from finding a config file outside the test.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "Emanuele Ianni", cfg.Site.Name)
	assert.Equal(t, "http://localhost:3000", cfg.Site.URL)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "posts", cfg.ContentDir)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.PostExtensions)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "dracula", cfg.Markdown.Style)
	assert.True(t, cfg.Markdown.UnsafeHTML)
	assert.Equal(t, 4, cfg.Build.Workers)

	assert.Equal(t, "Emanuele Ianni", cfg.Bio.Name)
	require.Len(t, cfg.Bio.Links, 4)
	assert.Equal(t, "My GitHub repository is located", cfg.Bio.Links[0].Label)
	assert.Equal(t, "here", cfg.Bio.Links[0].Text)
	assert.Equal(t, "https://github.com/invasionofsmallcubes", cfg.Bio.Links[0].URL)
	assert.Equal(t, "theinvasionofsmallcubes", cfg.Bio.Links[3].Text)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
site:
  name: My Site
  url: https://example.org
content_dir: articles
cache_ttl: 30s
bio:
  name: Someone Else
  intro: Hi there.
  links:
    - label: Code at
      text: example
      url: https://example.org/code
markdown:
  style: monokai
  line_numbers: true
`)

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "My Site", cfg.Site.Name)
	assert.Equal(t, "https://example.org", cfg.Site.URL)
	assert.Equal(t, "articles", cfg.ContentDir)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "Someone Else", cfg.Bio.Name)
	assert.Equal(t, "Hi there.", cfg.Bio.Intro)
	require.Len(t, cfg.Bio.Links, 1)
	assert.Equal(t, "https://example.org/code", cfg.Bio.Links[0].URL)
	assert.Equal(t, "monokai", cfg.Markdown.Style)
	assert.True(t, cfg.Markdown.LineNumbers)
	// Untouched keys keep their defaults.
	assert.Equal(t, ":3000", cfg.Addr)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "site:\n  url: https://file.example\ncontent_dir: from-file\n")
	t.Setenv("FOLIO_SITE_URL", "https://env.example")
	t.Setenv("FOLIO_CONTENT_DIR", "from-env")

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example", cfg.Site.URL)
	assert.Equal(t, "from-env", cfg.ContentDir)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"site url":  "site:\n  url: not a url\n",
		"bio link":  "bio:\n  links:\n    - label: x\n      text: y\n      url: nowhere\n",
		"log level": "log_level: loud\n",
		"workers":   "build:\n  workers: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			v := viper.New()
			v.SetConfigFile(writeConfig(t, body))
			_, err := LoadConfig(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigUnreadableFile(t *testing.T) {
	isolate(t)
	v := viper.New()
	v.SetConfigFile(writeConfig(t, "site: [unterminated\n"))
	_, err := LoadConfig(v)
	assert.ErrorContains(t, err, "read config")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Site.URL = "::"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, NewLogger("debug").Level(), parseLevel("DEBUG"))
	assert.Equal(t, parseLevel("info"), parseLevel("bogus"))
	assert.NotEqual(t, parseLevel("off"), parseLevel("error"))
}
