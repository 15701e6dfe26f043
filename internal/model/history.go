package model

import "time"

// HistoryEntry is one stored calculation of a calculator screen.
type HistoryEntry struct {
	// ID is a UUIDv7, so lexical order follows creation order.
	ID string `json:"id"`

	CalculatorID string `json:"calculatorId"`

	// Inputs holds the raw submitted values keyed by input name.
	Inputs map[string]string `json:"inputs"`

	// Outputs holds the numeric results keyed by output name.
	Outputs map[string]float64 `json:"outputs,omitempty"`

	// Summary is a short human-readable rendering of the result.
	Summary string `json:"summary,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
