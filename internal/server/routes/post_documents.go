package routes

import (
	"encoding/json"
	"net/http"

	"github.com/Verridian-ai/legal-gsw/internal/queue"
	"github.com/Verridian-ai/legal-gsw/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// PostDocumentHandler enqueues one document for extraction and merging. The
// worker consumes the queue in order, so submission order is merge order.
func PostDocumentHandler(c echo.Context) error {
	type postDocumentParams struct {
		DocumentID string `json:"document_id" validate:"required"`
		StorageKey string `json:"storage_key" validate:"required_without=Text"`
		Text       string `json:"text" validate:"required_without=StorageKey"`
	}

	type postDocumentResponse struct {
		Message    string `json:"message"`
		DocumentID string `json:"document_id,omitempty"`
	}

	params := new(postDocumentParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, postDocumentResponse{
			Message: "Invalid request params",
		})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, postDocumentResponse{
			Message: "Invalid request params",
		})
	}

	msg, err := json.Marshal(queue.DocumentMsg{
		DocumentID: params.DocumentID,
		StorageKey: params.StorageKey,
		Text:       params.Text,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, postDocumentResponse{
			Message: "Internal server error",
		})
	}

	ch := c.(*middleware.AppContext).App.Queue
	if err := queue.PublishFIFO(ch, queue.DocumentQueue, msg); err != nil {
		return c.JSON(http.StatusInternalServerError, postDocumentResponse{
			Message: "Failed to enqueue document",
		})
	}

	return c.JSON(http.StatusAccepted, postDocumentResponse{
		Message:    "Document queued",
		DocumentID: params.DocumentID,
	})
}
