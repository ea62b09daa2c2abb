// Package pdfrenderer calls the HTML-to-PDF rendering service.
//
// The service receives the document payload as JSON together with the name
// of the template to apply and answers with the PDF bytes.
package pdfrenderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

const (
	dependency = "pdf renderer"

	// maxDocumentSize bounds the response body read into memory.
	maxDocumentSize = 20 << 20
)

type renderRequest struct {
	Template string                `json:"template"`
	Data     ports.DocumentPayload `json:"data"`
}

// Client implements ports.PdfRenderer.
type Client struct {
	httpClient *http.Client
	endpoint   string
	template   string
}

// NewClient targets the render endpoint with the given template name. The
// timeout bounds each call, including reading the document.
func NewClient(endpoint, template string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		template:   template,
	}
}

// Render posts payload to the renderer. Transport errors, non-2xx answers
// and empty documents are dependency failures.
func (c *Client) Render(ctx context.Context, payload ports.DocumentPayload) ([]byte, error) {
	body, err := json.Marshal(renderRequest{Template: c.template, Data: payload})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewDependencyFailureErrorWithCause(dependency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errs.NewDependencyFailureErrorWithCause(dependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(detail)))
	}

	document, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, errs.NewDependencyFailureErrorWithCause(dependency, err)
	}
	if len(document) == 0 {
		return nil, errs.NewDependencyFailureErrorWithCause(dependency, fmt.Errorf("empty document"))
	}
	if len(document) > maxDocumentSize {
		return nil, errs.NewDependencyFailureErrorWithCause(dependency,
			fmt.Errorf("document exceeds %d bytes", maxDocumentSize))
	}
	return document, nil
}
