package folio

import (
	"encoding/xml"
	"io"

	"github.com/eringen/folio/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// writeSitemap lists the home page and every post page.
func writeSitemap(w io.Writer, site views.SiteConfig, posts []views.PostSummary) error {
	urls := make([]sitemapURL, 0, len(posts)+1)
	home := sitemapURL{Loc: views.BuildURL(site.URL)}
	if len(posts) > 0 {
		home.LastMod = posts[0].Date
	}
	urls = append(urls, home)
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(site.URL, "posts", p.ID),
			LastMod: p.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
