package handler

import (
	"time"

	"github.com/dioritemc/diorite-go/internal/core/domain"
)

// Response is the standard API envelope for every JSON response.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// RegistryStatus is the outcome of the start-up snapshot check.
type RegistryStatus struct {
	// State is one of "unchecked", "verified", "drift" or "new".
	State    string `json:"state"`
	Snapshot string `json:"snapshot,omitempty"`
	Added    int    `json:"added,omitempty"`
	Removed  int    `json:"removed,omitempty"`
	Changed  int    `json:"changed,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string          `json:"status"`
	Time             string          `json:"time"`
	Version          string          `json:"version"`
	MinecraftVersion string          `json:"minecraft_version"`
	Materials        int             `json:"materials"`
	Variants         int             `json:"variants"`
	PaletteSize      int             `json:"palette_size"`
	Registry         *RegistryStatus `json:"registry,omitempty"`
}

// ListMaterialsResponse is the body of GET /v1/materials.
type ListMaterialsResponse struct {
	Items  []domain.MaterialRecord `json:"items"`
	Total  int                     `json:"total"`
	Offset int                     `json:"offset"`
	Limit  int                     `json:"limit"`
}

// VariantsResponse is the body of GET /v1/materials/{ref}/variants.
type VariantsResponse struct {
	Items []domain.MaterialRecord `json:"items"`
}

// PaletteResponse is the body of GET /v1/palette and GET /v1/palette/hot.
type PaletteResponse struct {
	Items  []domain.PaletteRecord `json:"items"`
	Hits   int64                  `json:"hits"`
	Misses int64                  `json:"misses"`
}
