package domain

import "errors"

var (
	// ErrInvalidQuery signals an empty or malformed search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrUpstreamService signals an unavailable or misbehaving external dependency.
	ErrUpstreamService = errors.New("upstream service error")
	// ErrDocumentNotFound signals a document absent from every routed store.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrContentParse signals content that could not be parsed into usable text.
	ErrContentParse = errors.New("content parse error")
)
