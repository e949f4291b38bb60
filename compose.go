package folio

import (
	"errors"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// PostSource is the read side of the post store.
type PostSource interface {
	ListIdentifiers() ([]string, error)
	ListSummaries() ([]content.Summary, error)
	GetPost(id string) (content.Post, error)
}

// BodyRenderer turns a markdown body into trusted HTML.
type BodyRenderer interface {
	Render(source string) string
}

// Composer binds store and renderer output into the view models.
type Composer struct {
	site     views.SiteConfig
	bio      views.Bio
	posts    PostSource
	renderer BodyRenderer
}

// NewComposer returns a Composer. site and bio are copied and never change.
func NewComposer(site views.SiteConfig, bio views.Bio, posts PostSource, renderer BodyRenderer) *Composer {
	bio.Links = append([]views.BioLink(nil), bio.Links...)
	return &Composer{
		site:     site,
		bio:      bio,
		posts:    posts,
		renderer: renderer,
	}
}

// Home returns the home page model. When some post files were rejected
// the page still lists the valid posts and the *content.ScanError is
// returned with it; any other error means there is no page.
func (c *Composer) Home() (views.HomePage, error) {
	summaries, err := c.posts.ListSummaries()
	if err != nil && !IsPartial(err) {
		return views.HomePage{}, err
	}

	page := views.HomePage{
		Site:  c.site,
		Bio:   c.bio,
		Posts: make([]views.PostSummary, len(summaries)),
	}
	for i, s := range summaries {
		page.Posts[i] = toPostSummary(s)
	}
	return page, err
}

// Post loads, renders and returns the page for one post.
func (c *Composer) Post(id string) (views.PostPage, error) {
	post, err := c.posts.GetPost(id)
	if err != nil {
		return views.PostPage{}, err
	}
	return views.PostPage{
		Site:    c.site,
		ID:      post.ID,
		Title:   post.Title,
		Date:    post.Date,
		Summary: post.Summary.Summary,
		Tags:    append([]string(nil), post.Tags...),
		Body:    c.renderer.Render(post.Body),
	}, nil
}

// RoutableIDs lists every identifier that should get a post page.
func (c *Composer) RoutableIDs() ([]string, error) {
	return c.posts.ListIdentifiers()
}

// IsPartial reports whether err only describes rejected post files, so
// the listing returned alongside it is still usable.
func IsPartial(err error) bool {
	var scanErr *content.ScanError
	return errors.As(err, &scanErr)
}

func toPostSummary(s content.Summary) views.PostSummary {
	return views.PostSummary{
		ID:      s.ID,
		Title:   s.Title,
		Date:    s.Date,
		Summary: s.Summary,
		Tags:    append([]string(nil), s.Tags...),
	}
}
