package folio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

type countingSource struct {
	listCalls int
	getCalls  int
	summaries []content.Summary
	listErr   error
}

func (s *countingSource) ListIdentifiers() ([]string, error) {
	if s.listErr != nil && !IsPartial(s.listErr) {
		return nil, s.listErr
	}
	ids := make([]string, len(s.summaries))
	for i, sum := range s.summaries {
		ids[i] = sum.ID
	}
	return ids, nil
}

func (s *countingSource) ListSummaries() ([]content.Summary, error) {
	s.listCalls++
	if s.listErr != nil && !IsPartial(s.listErr) {
		return nil, s.listErr
	}
	return append([]content.Summary{}, s.summaries...), s.listErr
}

func (s *countingSource) GetPost(id string) (content.Post, error) {
	s.getCalls++
	return content.Post{Summary: content.Summary{ID: id}}, nil
}

func TestPostCacheServesWithinTTL(t *testing.T) {
	src := &countingSource{summaries: []content.Summary{{ID: "a", Title: "A", Date: "2020-01-01"}}}
	c := NewPostCache(src, time.Minute, nil)

	for i := 0; i < 3; i++ {
		got, err := c.ListSummaries()
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, 1, src.listCalls)

	ids, err := c.ListIdentifiers()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
	assert.Equal(t, 1, src.listCalls)

	c.Invalidate()
	_, err = c.ListSummaries()
	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls)
}

func TestPostCacheExpires(t *testing.T) {
	src := &countingSource{summaries: []content.Summary{{ID: "a"}}}
	c := NewPostCache(src, 20*time.Millisecond, nil)

	_, err := c.ListSummaries()
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)
	_, err = c.ListSummaries()
	require.NoError(t, err)
	assert.Equal(t, 2, src.listCalls)
}

func TestPostCacheZeroTTLPassesThrough(t *testing.T) {
	src := &countingSource{summaries: []content.Summary{{ID: "a"}}}
	c := NewPostCache(src, 0, nil)

	for i := 0; i < 3; i++ {
		_, err := c.ListSummaries()
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.listCalls)
}

func TestPostCacheKeepsPartialListing(t *testing.T) {
	scanErr := &content.ScanError{Errs: []error{errors.New("bad.md rejected")}}
	src := &countingSource{summaries: []content.Summary{{ID: "a"}}, listErr: scanErr}
	c := NewPostCache(src, time.Minute, nil)

	got, err := c.ListSummaries()
	assert.True(t, IsPartial(err))
	assert.Len(t, got, 1)

	got, err = c.ListSummaries()
	assert.True(t, IsPartial(err))
	assert.Len(t, got, 1)
	assert.Equal(t, 1, src.listCalls)
}

func TestPostCacheDoesNotCacheFailures(t *testing.T) {
	src := &countingSource{listErr: content.ErrStoreUnavailable}
	c := NewPostCache(src, time.Minute, nil)

	_, err := c.ListSummaries()
	assert.ErrorIs(t, err, content.ErrStoreUnavailable)

	src.listErr = nil
	src.summaries = []content.Summary{{ID: "a"}}
	got, err := c.ListSummaries()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestPostCacheGetPostBypassesCache(t *testing.T) {
	src := &countingSource{}
	c := NewPostCache(src, time.Minute, nil)

	_, _ = c.GetPost("a")
	_, _ = c.GetPost("a")
	assert.Equal(t, 2, src.getCalls)
}

func TestPostCacheLogsRejectionsOncePerLoad(t *testing.T) {
	scanErr := &content.ScanError{Errs: []error{errors.New("bad.md rejected")}}
	src := &countingSource{summaries: []content.Summary{{ID: "a"}}, listErr: scanErr}
	var logs bytes.Buffer
	logger := NewLogger("warn")
	logger.SetOutput(&logs)
	c := NewPostCache(src, time.Minute, logger)

	for i := 0; i < 3; i++ {
		_, err := c.ListSummaries()
		require.True(t, IsPartial(err))
	}
	assert.Equal(t, 1, strings.Count(logs.String(), "bad.md rejected"))

	c.Invalidate()
	_, _ = c.ListSummaries()
	assert.Equal(t, 2, strings.Count(logs.String(), "bad.md rejected"))
}
