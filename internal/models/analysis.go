package models

import "time"

// AnalysisRecord is one persisted classification run: what was analyzed,
// what the classifier decided, and where the description ended up.
type AnalysisRecord struct {
	ID           string
	Branch       string
	BaseRef      string
	Severity     Severity
	Reasoning    string
	Insertions   int
	Deletions    int
	LinesChanged int
	FilesChanged int
	PRURL        string // empty when the analysis never reached a PR
	CreatedAt    time.Time
}
