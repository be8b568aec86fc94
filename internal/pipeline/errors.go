package pipeline

import "fmt"

// FailureKind classifies terminal pipeline failures. Each kind maps to a
// distinct operator-facing response; nothing is retried.
type FailureKind string

const (
	FailWorkspace       FailureKind = "WorkspaceError"
	FailStage1          FailureKind = "Stage1Error"
	FailRelocation      FailureKind = "RelocationError"
	FailStage2          FailureKind = "Stage2Error"
	FailArtifactMissing FailureKind = "ArtifactMissingError"
)

// Error is a terminal pipeline failure, carrying the stage's captured
// stderr for diagnostics.
type Error struct {
	Kind   FailureKind
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error, or "" if it is not a
// pipeline failure.
func KindOf(err error) FailureKind {
	if pErr, ok := err.(*Error); ok {
		return pErr.Kind
	}
	return ""
}
