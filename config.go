package folio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/views"
)

// Config holds all configuration for a folio site. It is built once at
// startup and never mutated afterwards.
type Config struct {
	Site views.SiteConfig `mapstructure:"site"`
	Bio  views.Bio        `mapstructure:"bio"`

	Addr           string        `mapstructure:"addr"`        // Listen address (default ":3000")
	ContentDir     string        `mapstructure:"content_dir"` // Post directory (default "posts")
	PostExtensions []string      `mapstructure:"post_extensions"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"` // Listing cache TTL; 0 disables
	LogLevel       string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error off"`

	Markdown MarkdownConfig `mapstructure:"markdown"`
	Build    BuildConfig    `mapstructure:"build"`
}

// MarkdownConfig controls post rendering.
type MarkdownConfig struct {
	Style       string `mapstructure:"style"`
	LineNumbers bool   `mapstructure:"line_numbers"`
	UnsafeHTML  bool   `mapstructure:"unsafe_html"`
}

// BuildConfig controls the static export.
type BuildConfig struct {
	OutDir  string `mapstructure:"out_dir"`
	Workers int    `mapstructure:"workers" validate:"gte=0"`
}

func (c *Config) setDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = "Blog"
	}
	if c.Site.URL == "" {
		c.Site.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "posts"
	}
	if len(c.PostExtensions) == 0 {
		c.PostExtensions = append([]string(nil), content.DefaultExtensions...)
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Markdown.Style == "" {
		c.Markdown.Style = markdown.DefaultStyle
	}
	if c.Build.OutDir == "" {
		c.Build.OutDir = "out"
	}
}

var validate = validator.New()

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if err := validate.Var(c.Site.URL, "required,url"); err != nil {
		return fmt.Errorf("site.url %q is not a valid URL", c.Site.URL)
	}
	if strings.TrimSpace(c.ContentDir) == "" {
		return errors.New("content_dir is required")
	}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config %s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// ConfigOption documents one configuration key and its default.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// ConfigOptions returns every configuration key with its default value.
func ConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "site.name", Default: "Emanuele Ianni", Comment: "Site name shown in the header, titles and feed"},
		{Key: "site.url", Default: "http://localhost:3000", Comment: "Canonical base URL used in feed, sitemap and meta tags"},
		{Key: "site.description", Default: "Things I build and write about", Comment: "Site description for RSS and meta tags"},
		{Key: "site.author", Default: "Emanuele Ianni", Comment: "Author name for JSON-LD and the footer"},

		{Key: "bio.name", Default: "Emanuele Ianni", Comment: "Name shown as the home page heading; empty hides it"},
		{Key: "bio.intro", Default: "Hello, my name is Emanuele Ianni and I try to build stuff people use.", Comment: "Opening line of the home page"},
		{Key: "bio.links", Default: defaultBioLinks(), Comment: "Profile links: list of {label, text, url}"},

		{Key: "addr", Default: ":3000", Comment: "HTTP listen address for serve"},
		{Key: "content_dir", Default: "posts", Comment: "Directory holding one markdown file per post"},
		{Key: "post_extensions", Default: content.DefaultExtensions, Comment: "File extensions treated as posts, in lookup order"},
		{Key: "cache_ttl", Default: "1m", Comment: "How long serve caches the post listing; 0 re-reads on every request"},
		{Key: "log_level", Default: "info", Comment: "debug, info, warn, error or off"},

		{Key: "markdown.style", Default: markdown.DefaultStyle, Comment: "Chroma style for code blocks"},
		{Key: "markdown.line_numbers", Default: false, Comment: "Number lines in highlighted code blocks"},
		{Key: "markdown.unsafe_html", Default: true, Comment: "Pass raw HTML in posts through to the page"},

		{Key: "build.out_dir", Default: "out", Comment: "Output directory for build"},
		{Key: "build.workers", Default: 4, Comment: "Posts rendered in parallel by build; 0 means unlimited"},
	}
}

func defaultBioLinks() []map[string]any {
	return []map[string]any{
		{"label": "My GitHub repository is located", "text": "here", "url": "https://github.com/invasionofsmallcubes"},
		{"label": "My LinkedIn page is located", "text": "here", "url": "https://www.linkedin.com/in/emanueleianni"},
		{"label": "My Twitter handler is", "text": "IsTDDDeadYet", "url": "https://twitter.com/IsTDDDeadYet"},
		{"label": "My Twitch handler is", "text": "theinvasionofsmallcubes", "url": "https://www.twitch.tv/theinvasionofsmallcubes"},
	}
}

// LoadConfig resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("folio")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "folio"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "folio"))
		}
		v.AddConfigPath(".")
	}

	for _, o := range ConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// FOLIO_SITE_URL overrides site.url, and so on.
	v.SetEnvPrefix("folio")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger returns the process logger at the given level.
func NewLogger(level string) *log.Logger {
	l := log.New("folio")
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
