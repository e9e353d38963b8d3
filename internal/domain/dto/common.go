// Package dto defines request and response schemas for the HTTP API.
package dto

// ListResponse is the shape of every paginated list endpoint. Count is the
// total number of matching rows, not the page length.
type ListResponse[T any] struct {
	Items    []T   `json:"items"`
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
