package models

// Severity buckets a change set by expected review effort.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// Metrics holds numeric change statistics extracted from git diff --stat output.
// All fields are zero when the corresponding value is absent from the stat text.
type Metrics struct {
	Insertions   int `json:"insertions"`
	Deletions    int `json:"deletions"`
	LinesChanged int `json:"lines_changed"`
	FilesChanged int `json:"files_changed"`
}

// Classification is the full result of analyzing a change set. It is built
// fresh on every call and never mutated afterwards.
type Classification struct {
	Metrics     Metrics  `json:"metrics"`
	Severity    Severity `json:"severity"`
	Reasoning   string   `json:"reasoning"`
	ImpactAreas []string `json:"impact_areas"`
	Risks       []string `json:"risks"`
}
