package model

// Result represent a completed analysis artifact
type Result struct {
	RequestID string
}
