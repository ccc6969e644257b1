package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeDiscovery represents search provider failures
	ErrorTypeDiscovery ErrorType = "discovery"
	// ErrorTypeFetch represents page fetch failures
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeStructuredParse represents malformed JSON-LD blocks
	ErrorTypeStructuredParse ErrorType = "structured_parse"
	// ErrorTypeNormalization represents price tokens with no coercible value
	ErrorTypeNormalization ErrorType = "normalization"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeAggregate represents an uncaught failure of a whole search run
	ErrorTypeAggregate ErrorType = "aggregate"
)

// SearchError represents a pipeline-stage error
type SearchError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

// Unwrap returns the underlying error
func (e *SearchError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error must fail the whole search run.
// Everything below the aggregate level is local to one URL or one source.
func (e *SearchError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeAggregate, ErrorTypeConfiguration:
		return true
	default:
		return false
	}
}

// New creates a new SearchError
func New(errType ErrorType, stage, message string, err error) *SearchError {
	return &SearchError{
		Type:    errType,
		Stage:   stage,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewDiscovery creates a new discovery error
func NewDiscovery(stage, message string, err error) *SearchError {
	return New(ErrorTypeDiscovery, stage, message, err)
}

// NewFetch creates a new fetch error
func NewFetch(stage, message string, err error) *SearchError {
	return New(ErrorTypeFetch, stage, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(stage string, duration time.Duration) *SearchError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, stage, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(stage, message string, err error) *SearchError {
	return New(ErrorTypeParsing, stage, message, err)
}

// NewStructuredParse creates a new structured-data parse error
func NewStructuredParse(stage, message string, err error) *SearchError {
	return New(ErrorTypeStructuredParse, stage, message, err)
}

// NewNormalization creates a new normalization error
func NewNormalization(stage, message string) *SearchError {
	return New(ErrorTypeNormalization, stage, message, nil)
}

// NewPublisher creates a new publisher error
func NewPublisher(stage, message string, err error) *SearchError {
	return New(ErrorTypePublisher, stage, message, err)
}

// NewValidation creates a new validation error
func NewValidation(stage, message string) *SearchError {
	return New(ErrorTypeValidation, stage, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *SearchError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// NewAggregate creates a new aggregate error
func NewAggregate(stage, message string, err error) *SearchError {
	return New(ErrorTypeAggregate, stage, message, err)
}
