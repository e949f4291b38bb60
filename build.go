package folio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// BuildOptions controls a static export.
type BuildOptions struct {
	OutDir  string
	Workers int  // posts rendered at once; <= 0 means no limit
	Strict  bool // fail when the home listing rejected any post file
}

// BuildError lists the pages that could not be built. Every other page
// was still written.
type BuildError struct {
	Failed map[string]error // keyed by post identifier, "" for the listing
}

func (e *BuildError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	msgs := make([]string, len(ids))
	for i, id := range ids {
		name := id
		if name == "" {
			name = "index"
		}
		msgs[i] = fmt.Sprintf("%s: %v", name, e.Failed[id])
	}
	return fmt.Sprintf("folio: %d page(s) failed: %s", len(ids), strings.Join(msgs, "; "))
}

// Build writes the whole site as static files under opts.OutDir: the home
// page, one page per post, the feed, the sitemap and the stylesheets.
// An unreadable content directory aborts the build; a bad post only
// fails its own page.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	if opts.OutDir == "" {
		opts.OutDir = a.Config.Build.OutDir
	}

	ids, err := a.Composer.RoutableIDs()
	if err != nil {
		return err
	}
	home, err := a.Composer.Home()
	if err != nil && !IsPartial(err) {
		return err
	}

	var (
		mu     sync.Mutex
		built  int
		failed = make(map[string]error)
	)
	if err != nil && opts.Strict {
		failed[""] = err
	}

	// Post pages are regenerated from scratch so removed posts disappear.
	if err := os.RemoveAll(filepath.Join(opts.OutDir, "posts")); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(opts.OutDir, "public"), 0o755); err != nil {
		return err
	}

	homeHTML, err := renderBytes(ctx, a.Views.Home(home))
	if err != nil {
		return fmt.Errorf("folio: render home: %w", err)
	}
	css, err := siteCSS()
	if err != nil {
		return err
	}
	var feed, sitemap bytes.Buffer
	if err := writeRSS(&feed, a.Config.Site, home.Posts); err != nil {
		return err
	}
	if err := writeSitemap(&sitemap, a.Config.Site, home.Posts); err != nil {
		return err
	}
	files := map[string][]byte{
		"index.html":        homeHTML,
		"feed.xml":          feed.Bytes(),
		"sitemap.xml":       sitemap.Bytes(),
		"public/site.css":   css,
		"public/chroma.css": a.chromaCSS,
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(opts.OutDir, name), b, 0o644); err != nil {
			return err
		}
	}

	g := new(errgroup.Group)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := a.buildPost(ctx, opts.OutDir, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.Logger.Warnf("post %q not built: %v", id, err)
				failed[id] = err
				return nil
			}
			built++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.Logger.Infof("built %d of %d post(s) into %s", built, len(ids), opts.OutDir)
	if len(failed) > 0 {
		return &BuildError{Failed: failed}
	}
	return nil
}

func (a *App) buildPost(ctx context.Context, outDir, id string) error {
	page, err := a.Composer.Post(id)
	if err != nil {
		return err
	}
	b, err := renderBytes(ctx, a.Views.Post(page))
	if err != nil {
		return err
	}
	dir := filepath.Join(outDir, "posts", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "index.html"), b, 0o644)
}
