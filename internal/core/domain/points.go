package domain

import "time"

// PointsEntry is a single loyalty award.
type PointsEntry struct {
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
	Date   time.Time `json:"date"`
}

// PointsLedger is a per-user running balance plus the append-only history
// behind it. Invariant: Total equals the sum of History amounts. The total is
// maintained incrementally on every award, never re-derived by scanning.
type PointsLedger struct {
	Total   int           `json:"total"`
	History []PointsEntry `json:"history"`
}

// EmptyLedger returns the zero-state ledger for a fresh or logged-out user.
func EmptyLedger() PointsLedger {
	return PointsLedger{Total: 0, History: []PointsEntry{}}
}

// Clone returns a deep copy of the ledger.
func (l PointsLedger) Clone() PointsLedger {
	return PointsLedger{
		Total:   l.Total,
		History: append([]PointsEntry(nil), l.History...),
	}
}
