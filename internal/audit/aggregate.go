package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/openacuity/acuity/internal/dom"
	"github.com/openacuity/acuity/internal/logger"
)

var log = logger.ForComponent("audit")

// Summary counts findings per severity bucket. Passing checks are
// tracked separately and carry no weight.
type Summary struct {
	Critical int `json:"critical"`
	Serious  int `json:"serious"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
	Passed   int `json:"passed"`
}

type Report struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Findings  []Finding `json:"findings"`
	Summary   Summary   `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

// Run executes every auditor against the document and merges their
// findings in call order. The score is a pure sum over severities, so
// auditor order never changes it.
func Run(doc *dom.Document, auditors []Auditor) *Report {
	var findings []Finding

	for _, a := range auditors {
		results := a.Scan(doc)
		log.Debug("auditor finished", "auditor", a.Name(), "findings", len(results))
		findings = append(findings, results...)
	}

	return Compile(findings)
}

// Compile builds a report from already-collected findings.
func Compile(findings []Finding) *Report {
	report := &Report{
		ID:        uuid.NewString(),
		Findings:  findings,
		Timestamp: time.Now().UTC(),
	}

	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			report.Summary.Critical++
		case SeveritySerious:
			report.Summary.Serious++
		case SeverityModerate:
			report.Summary.Moderate++
		case SeverityMinor:
			report.Summary.Minor++
		case SeverityPass:
			report.Summary.Passed++
		}
	}

	report.Score = Score(findings)
	return report
}

// Score maps findings to 0-100: weight = 4*critical + 3*serious +
// 2*moderate + 1*minor, score = max(0, 100 - weight*2). Zero findings
// always score 100.
func Score(findings []Finding) int {
	weight := 0
	for _, f := range findings {
		weight += f.Severity.Weight()
	}

	score := 100 - weight*2
	if score < 0 {
		return 0
	}
	return score
}
