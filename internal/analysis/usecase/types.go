package usecase

import "time"

// Submission is one analysis request as posted by a client.
type Submission struct {
	DNASequence  string `json:"dnaSequence" validate:"required"`
	DNASequence2 string `json:"dnaSequence2" validate:"required"`
	Email        string `json:"email" validate:"required,email"`

	Timestamp time.Time `json:"-"`
}

// SubmitResponse is returned once the whole pipeline has finished and the
// result email went out.
type SubmitResponse struct {
	RequestID string `json:"requestId"`
	State     string `json:"state"`
}

// StatusResponse reports the recorded state of a request.
type StatusResponse struct {
	RequestID   string    `json:"requestId"`
	State       string    `json:"state"`
	FailureKind string    `json:"failureKind,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type UsecaseError struct {
	Code    int
	Message string
}

func (e UsecaseError) Error() string {
	return e.Message
}
