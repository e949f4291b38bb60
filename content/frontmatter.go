package content

import (
	"bytes"
	"errors"
	"reflect"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/go-playground/validator/v10"
)

// frontMatter is the metadata block at the top of every post file.
type frontMatter struct {
	Title   string   `yaml:"title" toml:"title" json:"title" validate:"required"`
	Date    string   `yaml:"date" toml:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Summary string   `yaml:"summary" toml:"summary" json:"summary"`
	Tags    []string `yaml:"tags" toml:"tags" json:"tags"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml keys so errors name the field as written in the file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parsePost splits source into front matter and body and checks the
// required fields. Failures are returned as *FrontMatterError.
func parsePost(id, path string, source []byte) (Post, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Post{}, &FrontMatterError{ID: id, Path: path, Err: err}
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Date = strings.TrimSpace(meta.Date)

	if err := validate.Struct(meta); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			reason := "missing"
			if fe.Tag() == "datetime" {
				reason = "want " + DateLayout + ", got " + strings.TrimSpace(meta.Date)
			}
			return Post{}, &FrontMatterError{ID: id, Path: path, Field: fe.Field(), Err: errors.New(reason)}
		}
		return Post{}, &FrontMatterError{ID: id, Path: path, Err: err}
	}

	return Post{
		Summary: Summary{
			ID:      id,
			Title:   meta.Title,
			Date:    meta.Date,
			Summary: strings.TrimSpace(meta.Summary),
			Tags:    normalizeTags(meta.Tags),
		},
		Path: path,
		Body: string(body),
	}, nil
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
