package workflow

import (
	"errors"
	"fmt"
)

// Guard errors returned by user-initiated operations. They are programming or
// input errors and never reach the notice area.
var (
	ErrEmptyNiche     = errors.New("niche must not be empty")
	ErrBusy           = errors.New("a request is already in progress")
	ErrUnknownKeyword = errors.New("keyword is not part of the current keyword set")
	ErrWrongStep      = errors.New("operation not available in the current step")
	ErrNoKeywords     = errors.New("keyword set must not be empty")
)

// FailureKind categorizes collaborator failures
type FailureKind string

const (
	// DiscoveryFailure covers keyword discovery and viral idea generation
	DiscoveryFailure FailureKind = "discovery"

	// AnalysisFailure covers video analysis
	AnalysisFailure FailureKind = "analysis"
)

// Failure is the user-visible form of a failed collaborator call
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Cause   error       `json:"-"`
}

// Error implements the error interface
func (e *Failure) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failure: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s failure: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Failure) Unwrap() error {
	return e.Cause
}

// Is matches failures of the same kind
func (e *Failure) Is(target error) bool {
	if f, ok := target.(*Failure); ok {
		return e.Kind == f.Kind
	}
	return false
}

func newFailure(kind CallKind, cause error) *Failure {
	switch kind {
	case CallViralIdeas:
		return &Failure{Kind: DiscoveryFailure, Message: "could not generate viral ideas", Cause: cause}
	case CallAnalyze:
		return &Failure{Kind: AnalysisFailure, Message: "could not analyze videos", Cause: cause}
	default:
		return &Failure{Kind: DiscoveryFailure, Message: "could not discover keywords, is the backend running?", Cause: cause}
	}
}

// IsDiscoveryFailure checks if an error is a discovery failure
func IsDiscoveryFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == DiscoveryFailure
}

// IsAnalysisFailure checks if an error is an analysis failure
func IsAnalysisFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == AnalysisFailure
}
