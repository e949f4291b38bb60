// Package folio is a small portfolio and blog site built with Go, Echo,
// and templ. Posts are markdown files with front matter; the site can be
// served live or exported as static HTML.
//
// Sites may replace any page through the ViewFuncs struct; folio handles
// the content pipeline, handlers, middleware, feed, and sitemap.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templ components the app calls when rendering
// pages. Nil fields fall back to the views package defaults.
type ViewFuncs struct {
	Home        func(page views.HomePage) templ.Component
	Post        func(page views.PostPage) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in page components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Post:        views.Post,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

func (v *ViewFuncs) fill() {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
}

// App wires together the store, cache, renderer, composer, handlers and
// middleware.
type App struct {
	Config   Config
	Echo     *echo.Echo
	Store    *content.Store
	Cache    *PostCache
	Renderer *markdown.Renderer
	Composer *Composer
	Views    ViewFuncs
	Logger   *log.Logger

	contentFS    fs.FS
	chromaCSS    []byte
	customRoutes []func(*App)
}

// New builds an App from cfg. It does no I/O; the content directory is
// first read when a page is requested or built.
func New(cfg Config, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("folio: %w", err)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.Views.fill()
	if a.Logger == nil {
		a.Logger = NewLogger(cfg.LogLevel)
	}
	a.Echo.Logger = a.Logger
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	storeOpts := []content.StoreOption{content.WithExtensions(cfg.PostExtensions...)}
	if a.contentFS != nil {
		a.Store = content.NewStoreFS(a.contentFS, cfg.ContentDir, storeOpts...)
	} else {
		a.Store = content.NewStore(cfg.ContentDir, storeOpts...)
	}
	a.Cache = NewPostCache(a.Store, cfg.CacheTTL, a.Logger)
	a.Renderer = markdown.New(markdown.Options{
		Style:       cfg.Markdown.Style,
		LineNumbers: cfg.Markdown.LineNumbers,
		UnsafeHTML:  cfg.Markdown.UnsafeHTML,
	})
	a.chromaCSS = []byte(a.Renderer.StyleCSS())
	a.Composer = NewComposer(cfg.Site, cfg.Bio, a.Cache, a.Renderer)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

// Start serves the site on Config.Addr until the server is shut down.
func (a *App) Start() error {
	a.Logger.Infof("serving %s from %s on %s", a.Config.Site.Name, a.Store.Dir(), a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", a.handleSiteCSS)
	e.GET("/public/chroma.css", a.handleChromaCSS)
	e.GET("/healthz", handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/posts/:id/", a.handlePost)
}
