// internal/application/usecase/uploader.go
package usecase

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	mediadom "storefront/internal/domain/media"
)

// UploadFailure names one image that did not make it to the store.
type UploadFailure struct {
	Index int
	Err   error
}

// UploadReport is the joined result of one fan-in run: URLs of the
// images that uploaded (completion order) and the failures by input
// index. Callers persist URLs in a single write and surface Failed to
// the client instead of reporting a bare success.
type UploadReport struct {
	URLs   []string
	Failed []UploadFailure
}

// AllFailed reports whether not a single upload went through.
func (r UploadReport) AllFailed(total int) bool {
	return total > 0 && len(r.URLs) == 0 && len(r.Failed) == total
}

// MediaUploader fans N independent uploads out and joins all N results
// before returning, so the report covers every input before any
// follow-up persistence write happens.
type MediaUploader struct {
	store mediadom.Store
}

func NewMediaUploader(store mediadom.Store) *MediaUploader {
	return &MediaUploader{store: store}
}

// UploadAll uploads every buffer concurrently. pathFor names the
// destination object for input index i. The returned report covers all
// N inputs; no error short-circuits the join.
func (u *MediaUploader) UploadAll(ctx context.Context, images [][]byte, pathFor func(i int) string) UploadReport {
	if len(images) == 0 {
		return UploadReport{}
	}

	type slot struct {
		url string
		err error
	}
	results := make([]slot, len(images))

	g, gctx := errgroup.WithContext(ctx)
	for i := range images {
		i := i
		g.Go(func() error {
			url, err := u.store.Upload(gctx, images[i], pathFor(i))
			if err != nil {
				// Recorded, not returned: one bad image must not
				// cancel its siblings.
				results[i] = slot{err: err}
				return nil
			}
			results[i] = slot{url: url}
			return nil
		})
	}
	_ = g.Wait()

	var report UploadReport
	for i, s := range results {
		if s.err != nil {
			report.Failed = append(report.Failed, UploadFailure{Index: i, Err: s.err})
			continue
		}
		report.URLs = append(report.URLs, s.url)
	}

	if len(report.Failed) > 0 {
		log.Printf("[uploader] %d/%d uploads failed", len(report.Failed), len(images))
	}
	return report
}

// FailureMessages renders Failed for API responses.
func (r UploadReport) FailureMessages() []string {
	out := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		out = append(out, fmt.Sprintf("image %d: upload failed", f.Index))
	}
	return out
}
