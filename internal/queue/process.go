package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Verridian-ai/legal-gsw/internal/archive"
	"github.com/Verridian-ai/legal-gsw/pkg/extractor"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"
	"github.com/Verridian-ai/legal-gsw/pkg/workspace"
)

// DocumentMsg is the payload published to the document queue. Either Text is
// carried inline or StorageKey points at the document in object storage.
type DocumentMsg struct {
	DocumentID string `json:"document_id"`
	StorageKey string `json:"storage_key,omitempty"`
	Text       string `json:"text,omitempty"`
}

// ProcessDocumentMessage runs one document through extraction and
// reconciliation. The merge record is archived best effort; an archive
// failure never fails a merged document.
func ProcessDocumentMessage(
	ctx context.Context,
	arc *archive.Archive,
	ex extractor.Extractor,
	manager *workspace.Manager,
	msg string,
) error {
	data := new(DocumentMsg)
	if err := json.Unmarshal([]byte(msg), data); err != nil {
		return fmt.Errorf("failed to unmarshal document message: %w", err)
	}
	if data.DocumentID == "" {
		return fmt.Errorf("document message missing document_id")
	}

	text := data.Text
	if text == "" {
		if data.StorageKey == "" {
			return fmt.Errorf("document message carries neither text nor storage_key")
		}
		if arc == nil {
			return fmt.Errorf("document %s requires object storage, but none is configured", data.DocumentID)
		}
		raw, err := arc.FetchDocument(ctx, data.StorageKey)
		if err != nil {
			return fmt.Errorf("failed to fetch document %s: %w", data.DocumentID, err)
		}
		text = string(raw)
	}

	local, err := ex.Extract(ctx, data.DocumentID, text, manager.ContextHint())
	if err != nil {
		return fmt.Errorf("failed to extract document %s: %w", data.DocumentID, err)
	}

	lg, err := manager.Apply(ctx, local, data.DocumentID)
	if err != nil {
		return fmt.Errorf("failed to merge document %s: %w", data.DocumentID, err)
	}

	if arc != nil {
		if err := arc.StoreMergeRecord(ctx, data.DocumentID, local, lg); err != nil {
			logger.Warn("[Queue] Failed to archive merge record",
				"document", data.DocumentID, "err", err)
		}
	}

	return nil
}
