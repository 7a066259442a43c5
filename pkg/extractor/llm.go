package extractor

import (
	"context"
	"fmt"

	"github.com/Verridian-ai/legal-gsw/internal/util"
	"github.com/Verridian-ai/legal-gsw/pkg/ai"
	"github.com/Verridian-ai/legal-gsw/pkg/gsw"
	"github.com/Verridian-ai/legal-gsw/pkg/logger"

	"github.com/go-playground/validator"
	"github.com/pkoukk/tiktoken-go"
)

const defaultMaxInputTokens = 60000
const defaultMaxTries = 3

// LLMExtractor implements Extractor on top of a schema-constrained language
// model call.
type LLMExtractor struct {
	aiClient       ai.GraphAIClient
	validate       *validator.Validate
	maxInputTokens int
	maxTries       int
}

// LLMExtractorParams contains configuration for creating an LLMExtractor.
type LLMExtractorParams struct {
	AIClient ai.GraphAIClient
	// MaxInputTokens caps the document text sent to the model. Defaults to
	// defaultMaxInputTokens when zero.
	MaxInputTokens int
	// MaxTries bounds extraction attempts per document. Defaults to
	// defaultMaxTries when zero.
	MaxTries int
}

// NewLLMExtractor creates an LLMExtractor.
func NewLLMExtractor(params LLMExtractorParams) *LLMExtractor {
	maxTokens := params.MaxInputTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxInputTokens
	}
	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = defaultMaxTries
	}
	return &LLMExtractor{
		aiClient:       params.AIClient,
		validate:       validator.New(),
		maxInputTokens: maxTokens,
		maxTries:       maxTries,
	}
}

// Extract runs schema-constrained extraction over the document text and
// converts the result into a local graph. Malformed model output is retried;
// the returned graph is schema-validated but its cross-references are left
// for the reconciler to resolve.
func (e *LLMExtractor) Extract(ctx context.Context, documentID string, text string, contextHint string) (*gsw.LocalGraph, error) {
	truncated, err := e.truncate(text)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize document text: %w", err)
	}
	if len(truncated) < len(text) {
		logger.Warn("[Extractor] Document truncated", "document", documentID, "max_tokens", e.maxInputTokens)
	}

	prompt := fmt.Sprintf(ExtractPromptCase, contextHint, documentID, truncated)

	var payload casePayload
	err = util.RetryErrWithContext(ctx, e.maxTries, func(ctx context.Context) error {
		payload = casePayload{}
		if err := e.aiClient.GenerateCompletionWithFormat(
			ctx,
			"case_graph",
			"Structured case graph extracted from one legal document",
			prompt,
			&payload,
		); err != nil {
			logger.Warn("[Extractor] Extraction attempt failed", "document", documentID, "error", err)
			return err
		}
		if err := e.validate.Struct(&payload); err != nil {
			logger.Warn("[Extractor] Extraction failed validation", "document", documentID, "error", err)
			return fmt.Errorf("extracted graph failed validation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract local graph: %w", err)
	}

	local := payload.toLocalGraph(documentID)
	logger.Info("[Extractor] Extracted local graph",
		"document", documentID,
		"entities", len(local.Entities),
		"events", len(local.Timeline),
		"states", len(local.States),
		"outcomes", len(local.Outcomes),
	)
	return local, nil
}

func (e *LLMExtractor) truncate(text string) (string, error) {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return "", err
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= e.maxInputTokens {
		return text, nil
	}
	return enc.Decode(tokens[:e.maxInputTokens]), nil
}
