// Package types provides type definitions for structured data used throughout the fitscore system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DocumentType tags the origin of a piece of free text.
type DocumentType string

// Document types understood by the engine
const (
	DocumentResume         DocumentType = "resume"
	DocumentJobDescription DocumentType = "job_description"
	DocumentJobRecordBlob  DocumentType = "job_record_blob"
)

// Document is free text with an optional type tag. It has no identity beyond its content.
type Document struct {
	Text string       `json:"text"`
	Type DocumentType `json:"type,omitempty"`
}

// Valid reports whether t is one of the known document types (or empty).
func (t DocumentType) Valid() bool {
	switch t {
	case "", DocumentResume, DocumentJobDescription, DocumentJobRecordBlob:
		return true
	default:
		return false
	}
}
