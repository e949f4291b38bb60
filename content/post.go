// Package content reads blog posts from a flat directory of markdown files.
package content

// DateLayout is the layout every post date must follow.
const DateLayout = "2006-01-02"

// Summary is the listing projection of a Post.
type Summary struct {
	ID      string
	Title   string
	Date    string
	Summary string
	Tags    []string
}

// Post is a single markdown file with its parsed front matter.
// Values are read-only copies; editing one never touches the file.
type Post struct {
	Summary
	Path string
	Body string
}
