package posts

import (
	"context"
	"errors"
	"fmt"
)

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	// OutcomeSuccess carries a Post.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure carries a user-facing Message and the cause in Err.
	OutcomeFailure
	// OutcomeCanceled means the request was superseded or canceled. It
	// carries nothing and should be ignored.
	OutcomeCanceled
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Outcome is the result of one fetch.
type Outcome struct {
	Kind      OutcomeKind
	RequestID string
	Post      Post
	Message   string
	Err       error
}

func success(reqID string, p Post) Outcome {
	return Outcome{Kind: OutcomeSuccess, RequestID: reqID, Post: p}
}

func canceled(reqID string) Outcome {
	return Outcome{Kind: OutcomeCanceled, RequestID: reqID}
}

func failure(reqID string, err error) Outcome {
	return Outcome{Kind: OutcomeFailure, RequestID: reqID, Message: failureMessage(err), Err: err}
}

func failureMessage(err error) string {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Failed to fetch destination (HTTP %d).", statusErr.StatusCode)
	case errors.Is(err, context.DeadlineExceeded):
		return "Fetching a destination timed out. Please try again."
	default:
		return "Failed to fetch destination. Check your connection and try again."
	}
}
