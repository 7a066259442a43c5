// Package extractor turns raw document text into the local graph the
// reconciler merges. The language model is treated as a collaborator behind
// the Extractor interface; hosts may substitute any implementation.
package extractor

import (
	"context"

	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
)

// Extractor produces a per-document local graph from document text.
// The contextHint carries the active vocabulary so labels converge across
// documents; it may be empty.
type Extractor interface {
	Extract(ctx context.Context, documentID string, text string, contextHint string) (*gsw.LocalGraph, error)
}
