// Package compact implements the lossy shrinking transform applied to the
// book list before it is written to a size-constrained store. Oversized
// embedded cover images are dropped and oversized chapter content is
// truncated; the live in-memory copy is never touched.
package compact

import (
	"github.com/sethfiresaid-gif/Book-Libary-Arc-Crusade/internal/model"
)

// TruncationMarker is appended to chapter content cut off by compaction.
const TruncationMarker = "...[truncated]"

// The two call sites use deliberately different thresholds. They look like
// drift, and probably are, but they are tuned independently per call site
// and stay separate knobs.
const (
	// Coordinator path: applied on every persist.
	CoordinatorCoverLimit   = 10000
	CoordinatorContentLimit = 30000

	// Fallback-store path: applied when writing through the quota-bound
	// key-value store.
	FallbackCoverLimit   = 50000
	FallbackContentLimit = 50000
)

// Policy bounds the size of embedded covers and chapter content.
type Policy struct {
	CoverLimit   int
	ContentLimit int
}

// CoordinatorPolicy returns the thresholds used by the persistence
// coordinator's direct compact path.
func CoordinatorPolicy() Policy {
	return Policy{CoverLimit: CoordinatorCoverLimit, ContentLimit: CoordinatorContentLimit}
}

// FallbackPolicy returns the thresholds used by the low-capacity backend's
// own compaction.
func FallbackPolicy() Policy {
	return Policy{CoverLimit: FallbackCoverLimit, ContentLimit: FallbackContentLimit}
}

// Apply returns a compacted deep copy of the book list. Embedded cover
// images longer than CoverLimit are replaced with an empty string; chapter
// content longer than ContentLimit is truncated to exactly ContentLimit
// characters plus the truncation marker. External cover URLs are never
// touched regardless of length. The input is not mutated.
func (p Policy) Apply(books []model.Book) []model.Book {
	out := model.CloneBooks(books)
	for i := range out {
		if model.IsEmbeddedImage(out[i].CoverURL) && len(out[i].CoverURL) > p.CoverLimit {
			out[i].CoverURL = ""
		}
		for j := range out[i].Chapters {
			content := out[i].Chapters[j].Content
			if len(content) > p.ContentLimit {
				out[i].Chapters[j].Content = content[:p.ContentLimit] + TruncationMarker
			}
		}
	}
	return out
}
