// Package views holds the default page components. They are plain
// templ.Components so sites can swap any of them out.
package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// htmlWriter writes a run of strings and remembers the first error.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if hw.err != nil {
			return
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) href(u string) {
	hw.raw(templ.EscapeString(string(templ.URL(u))))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil || c == nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Layout wraps body in the shared page chrome.
func Layout(site SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		title := meta.Title
		if title == "" {
			title = site.Name
		}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"/><title>`)
		hw.text(title)
		hw.raw(`</title>`)
		if meta.Description != "" {
			hw.raw(`<meta name="description" content="`)
			hw.text(meta.Description)
			hw.raw(`"/>`)
		}
		if meta.URL != "" {
			hw.raw(`<link rel="canonical" href="`)
			hw.href(meta.URL)
			hw.raw(`"/><meta property="og:url" content="`)
			hw.href(meta.URL)
			hw.raw(`"/>`)
		}
		hw.raw(`<meta property="og:title" content="`)
		hw.text(title)
		hw.raw(`"/><meta property="og:type" content="`)
		hw.text(meta.OGType)
		hw.raw(`"/>`,
			`<link rel="stylesheet" href="/public/site.css"/>`,
			`<link rel="stylesheet" href="/public/chroma.css"/>`,
			`<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="`)
		hw.text(site.Name)
		hw.raw(`"/>`)
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and & so the block cannot close the script tag.
			hw.raw(`<script type="application/ld+json">`, meta.JSONLD, `</script>`)
		}
		hw.raw(`</head><body><div class="container"><header class="header"><a class="site-name" href="/">`)
		hw.text(site.Name)
		hw.raw(`</a></header><main>`)
		hw.component(ctx, body)
		hw.raw(`</main><footer class="footer">`)
		if site.Author != "" {
			hw.text(site.Author)
		}
		hw.raw(`</footer></div></body></html>`)
		return hw.err
	})
}

// Home renders the bio block followed by the post list.
func Home(page HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="bio">`)
		if page.Bio.Name != "" {
			hw.raw(`<h1 class="heading-xl">`)
			hw.text(page.Bio.Name)
			hw.raw(`</h1>`)
		}
		if page.Bio.Intro != "" {
			hw.raw(`<p>`)
			hw.text(page.Bio.Intro)
			hw.raw(`</p>`)
		}
		for _, link := range page.Bio.Links {
			hw.raw(`<p>`)
			if link.Label != "" {
				hw.text(link.Label)
				hw.raw(` `)
			}
			text := link.Text
			if text == "" {
				text = link.URL
			}
			hw.raw(`<a href="`)
			hw.href(link.URL)
			hw.raw(`" rel="me noopener">`)
			hw.text(text)
			hw.raw(`</a></p>`)
		}
		hw.raw(`</section><section class="posts"><h2>Blog</h2>`)
		if len(page.Posts) == 0 {
			hw.raw(`<p class="light-text">No posts yet.</p>`)
		} else {
			hw.raw(`<ul class="post-list">`)
			for _, p := range page.Posts {
				hw.raw(`<li><a href="`)
				hw.href(PostPath(p.ID))
				hw.raw(`">`)
				hw.text(p.Title)
				hw.raw(`</a><br/><small class="light-text">`)
				writeDate(hw, p.Date)
				hw.raw(`</small>`)
				if p.Summary != "" {
					hw.raw(`<p>`)
					hw.text(p.Summary)
					hw.raw(`</p>`)
				}
				hw.raw(`</li>`)
			}
			hw.raw(`</ul>`)
		}
		hw.raw(`</section>`)
		return hw.err
	})

	meta := PageMeta{
		Title:       page.Site.Name,
		Description: page.Site.Description,
		URL:         BuildURL(page.Site.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(page.Site),
	}
	return Layout(page.Site, meta, body)
}

// Post renders a single article. page.Body is written without escaping.
func Post(page PostPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<article><h1 class="heading-xl">`)
		hw.text(page.Title)
		hw.raw(`</h1><div class="light-text">`)
		writeDate(hw, page.Date)
		hw.raw(`</div>`)
		if len(page.Tags) > 0 {
			hw.raw(`<div class="tags">`)
			hw.text(strings.Join(page.Tags, ", "))
			hw.raw(`</div>`)
		}
		hw.raw(`<div class="post-body">`, page.Body, `</div></article>`)
		hw.raw(`<p class="back"><a href="/">&larr; Back to home</a></p>`)
		return hw.err
	})

	meta := PageMeta{
		Title:       page.Title,
		Description: page.Summary,
		URL:         BuildURL(page.Site.URL, "posts", page.ID),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(page.Site, page),
	}
	return Layout(page.Site, meta, body)
}

// NotFound renders the 404 page.
func NotFound(site SiteConfig) templ.Component {
	return errorPage(site, "Not found", "The page you are looking for does not exist.")
}

// ServerError renders the 500 page.
func ServerError(site SiteConfig) templ.Component {
	return errorPage(site, "Something went wrong", "Please try again later.")
}

func errorPage(site SiteConfig, heading, message string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<section class="error"><h1>`)
		hw.text(heading)
		hw.raw(`</h1><p>`)
		hw.text(message)
		hw.raw(`</p><p><a href="/">&larr; Back to home</a></p></section>`)
		return hw.err
	})
	return Layout(site, PageMeta{Title: heading + " | " + site.Name, OGType: "website"}, body)
}

func writeDate(hw *htmlWriter, date string) {
	hw.raw(`<time datetime="`)
	hw.text(date)
	hw.raw(`">`)
	hw.text(FormatDate(date))
	hw.raw(`</time>`)
}
