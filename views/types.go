package views

// SiteConfig holds site-wide settings shared by every page.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	JSONLD      string
}

// BioLink is one external profile link on the home page, rendered as
// "<Label> <a href=URL>Text</a>".
type BioLink struct {
	Label string `mapstructure:"label"`
	Text  string `mapstructure:"text"`
	URL   string `mapstructure:"url" validate:"required,url"`
}

// Bio is the fixed biographical block at the top of the home page.
type Bio struct {
	Name  string    `mapstructure:"name"`
	Intro string    `mapstructure:"intro"`
	Links []BioLink `mapstructure:"links" validate:"dive"`
}

// PostSummary is one entry in the home page post list.
type PostSummary struct {
	ID      string
	Title   string
	Date    string
	Summary string
	Tags    []string
}

// HomePage is everything the home view needs.
type HomePage struct {
	Site  SiteConfig
	Bio   Bio
	Posts []PostSummary
}

// PostPage is everything a post view needs. Body is trusted HTML.
type PostPage struct {
	Site    SiteConfig
	ID      string
	Title   string
	Date    string
	Summary string
	Tags    []string
	Body    string
}
