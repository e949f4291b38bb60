package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// DefaultExtensions lists the file extensions treated as posts, in lookup order.
var DefaultExtensions = []string{".md", ".markdown"}

// Store reads posts from a single flat directory. It never writes.
type Store struct {
	fsys       fs.FS
	dir        string
	extensions []string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithExtensions overrides the post file extensions. Earlier entries win
// when two files share an identifier.
func WithExtensions(exts ...string) StoreOption {
	return func(s *Store) {
		var cleaned []string
		for _, ext := range exts {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cleaned = append(cleaned, ext)
		}
		if len(cleaned) > 0 {
			s.extensions = cleaned
		}
	}
}

// NewStore returns a Store over the directory dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	return NewStoreFS(os.DirFS(dir), dir, opts...)
}

// NewStoreFS returns a Store over fsys. dir is only used in messages.
func NewStoreFS(fsys fs.FS, dir string, opts ...StoreOption) *Store {
	s := &Store{
		fsys:       fsys,
		dir:        dir,
		extensions: append([]string(nil), DefaultExtensions...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Entry is the outcome of loading one post file during a scan.
type Entry struct {
	ID      string
	Path    string
	Summary Summary
	Err     error
}

type postFile struct {
	id   string
	name string
	rank int
}

// files lists post files keyed by identifier, sorted by identifier.
// Files shadowed by a higher-ranked extension are returned separately.
func (s *Store) files() ([]postFile, []postFile, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, s.dir, err)
	}

	byID := make(map[string]postFile)
	var shadowed []postFile
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !s.isPostFile(entry) {
			continue
		}
		rank := s.extensionRank(name)
		if rank < 0 {
			continue
		}
		id := strings.TrimSuffix(name, path.Ext(name))
		if id == "" {
			continue
		}
		f := postFile{id: id, name: name, rank: rank}
		prev, ok := byID[id]
		switch {
		case !ok:
			byID[id] = f
		case f.rank < prev.rank:
			byID[id] = f
			shadowed = append(shadowed, prev)
		default:
			shadowed = append(shadowed, f)
		}
	}

	files := make([]postFile, 0, len(byID))
	for _, f := range byID {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].id < files[j].id })
	sort.Slice(shadowed, func(i, j int) bool { return shadowed[i].name < shadowed[j].name })
	return files, shadowed, nil
}

// isPostFile accepts regular files and symlinks to regular files, the
// same set GetPost can open.
func (s *Store) isPostFile(entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(s.fsys, entry.Name())
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) extensionRank(name string) int {
	ext := path.Ext(name)
	for i, e := range s.extensions {
		if ext == e {
			return i
		}
	}
	return -1
}

// ListIdentifiers returns one identifier per post file, sorted ascending.
// Front matter is not read, so malformed posts are still listed.
func (s *Store) ListIdentifiers() ([]string, error) {
	files, _, err := s.files()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.id
	}
	return ids, nil
}

// Scan loads the front matter of every post file and reports a typed
// result per file. A bad file never stops the scan; only an unreadable
// directory returns an error.
func (s *Store) Scan() ([]Entry, error) {
	files, shadowed, err := s.files()
	if err != nil {
		return nil, err
	}
	result := make([]Entry, 0, len(files)+len(shadowed))
	for _, f := range files {
		post, err := s.load(f)
		result = append(result, Entry{
			ID:      f.id,
			Path:    f.name,
			Summary: post.Summary,
			Err:     err,
		})
	}
	for _, f := range shadowed {
		result = append(result, Entry{
			ID:   f.id,
			Path: f.name,
			Err:  fmt.Errorf("%w: %s ignored for %q", ErrDuplicateID, f.name, f.id),
		})
	}
	return result, nil
}

// ListSummaries returns the summaries of all well-formed posts, newest
// first with ties ordered by identifier. If any file was rejected the
// valid summaries are still returned together with a *ScanError.
func (s *Store) ListSummaries() ([]Summary, error) {
	entries, err := s.Scan()
	if err != nil {
		return nil, err
	}
	summaries := make([]Summary, 0, len(entries))
	var errs []error
	for _, e := range entries {
		if e.Err != nil {
			errs = append(errs, e.Err)
			continue
		}
		summaries = append(summaries, e.Summary)
	}
	SortSummaries(summaries)
	if len(errs) > 0 {
		return summaries, &ScanError{Errs: errs}
	}
	return summaries, nil
}

// GetPost loads the post with the given identifier.
func (s *Store) GetPost(id string) (Post, error) {
	if !validID(id) {
		return Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for i, ext := range s.extensions {
		name := id + ext
		info, err := fs.Stat(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Post{}, fmt.Errorf("content: stat %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		return s.load(postFile{id: id, name: name, rank: i})
	}
	if _, err := fs.Stat(s.fsys, "."); err != nil {
		return Post{}, fmt.Errorf("%w: read %s: %w", ErrStoreUnavailable, s.dir, err)
	}
	return Post{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

func (s *Store) load(f postFile) (Post, error) {
	data, err := fs.ReadFile(s.fsys, f.name)
	if err != nil {
		return Post{}, fmt.Errorf("content: read %s: %w", f.name, err)
	}
	return parsePost(f.id, f.name, data)
}

// validID accepts a single path element that could name a post file.
func validID(id string) bool {
	if id == "" || strings.HasPrefix(id, ".") {
		return false
	}
	return fs.ValidPath(id) && !strings.ContainsAny(id, `/\`)
}

// SortSummaries orders summaries by date descending, then identifier ascending.
func SortSummaries(summaries []Summary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Date != summaries[j].Date {
			return summaries[i].Date > summaries[j].Date
		}
		return summaries[i].ID < summaries[j].ID
	})
}
