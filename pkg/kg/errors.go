package kg

import (
	"errors"
	"fmt"
)

// FailureKind tags the reason a question could not be answered. The HTTP
// and MCP layers use it to pick a status code and a clarifying message.
type FailureKind string

const (
	// FailUnresolvedEntity means no known entity matched the question
	// above the acceptance threshold.
	FailUnresolvedEntity FailureKind = "unresolved_entity"

	// FailAmbiguousIntent means a Character question whose relation could
	// not be disambiguated above the confidence floor.
	FailAmbiguousIntent FailureKind = "ambiguous_intent"

	// FailMalformedPlan is a programming-contract violation: an empty
	// relation chain or an unknown label reached the executor.
	FailMalformedPlan FailureKind = "malformed_plan"

	// FailInfrastructure covers transient faults such as an unreachable
	// embedding endpoint. Distinct from UnresolvedEntity on purpose:
	// retrying the same question may succeed.
	FailInfrastructure FailureKind = "infrastructure"
)

// QueryError is the single error type crossing the pipeline boundary.
type QueryError struct {
	Kind FailureKind
	Msg  string
	Err  error
}

func (e *QueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *QueryError) Unwrap() error { return e.Err }

func unresolvedEntity(format string, args ...any) *QueryError {
	return &QueryError{Kind: FailUnresolvedEntity, Msg: fmt.Sprintf(format, args...)}
}

func ambiguousIntent(format string, args ...any) *QueryError {
	return &QueryError{Kind: FailAmbiguousIntent, Msg: fmt.Sprintf(format, args...)}
}

func malformedPlan(format string, args ...any) *QueryError {
	return &QueryError{Kind: FailMalformedPlan, Msg: fmt.Sprintf(format, args...)}
}

func infrastructure(msg string, err error) *QueryError {
	return &QueryError{Kind: FailInfrastructure, Msg: msg, Err: err}
}

// KindOf extracts the FailureKind from err, if err (or anything it wraps)
// is a QueryError.
func KindOf(err error) (FailureKind, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind, true
	}
	return "", false
}
