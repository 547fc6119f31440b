package audit

import (
	"github.com/google/uuid"

	"github.com/openacuity/acuity/internal/dom"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeveritySerious  Severity = "serious"
	SeverityModerate Severity = "moderate"
	SeverityMinor    Severity = "minor"

	// SeverityPass marks checks that were run and found compliant.
	// Passes carry no weight and are reported separately.
	SeverityPass Severity = "pass"
)

// Weight returns the scoring weight of a severity bucket.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeveritySerious:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

func (s Severity) IsViolation() bool {
	switch s {
	case SeverityCritical, SeveritySerious, SeverityModerate, SeverityMinor:
		return true
	}
	return false
}

// Finding is a single audit observation. Findings are values: once an
// auditor returns one, nothing mutates it.
type Finding struct {
	ID             string       `json:"id"`
	Rule           string       `json:"rule"`
	Severity       Severity     `json:"severity"`
	Message        string       `json:"message"`
	Recommendation string       `json:"recommendation,omitempty"`
	Target         string       `json:"target,omitempty"`
	WCAGRefs       []string     `json:"wcagReferences,omitempty"`
	Element        *dom.Element `json:"-"`
}

func newFinding(rule string, sev Severity, el *dom.Element, msg string) Finding {
	f := Finding{
		ID:             uuid.NewString(),
		Rule:           rule,
		Severity:       sev,
		Message:        msg,
		Recommendation: recommendations[rule],
		WCAGRefs:       wcagRefs[rule],
		Element:        el,
	}
	if el != nil {
		f.Target = el.Path()
	}
	return f
}

const (
	RuleHeadingEmpty      = "heading-empty"
	RuleHeadingSkip       = "heading-skip"
	RuleHeadingMultipleH1 = "heading-multiple-h1"
	RuleHeadingStructure  = "heading-structure"
	RuleImageAlt          = "image-alt"
	RuleFormLabel         = "form-label"
	RuleFormRequired      = "form-required"
	RuleFormDescribedBy   = "form-describedby"
	RuleColorContrast     = "color-contrast"
)

var wcagRefs = map[string][]string{
	RuleHeadingEmpty:      {"1.3.1", "2.4.6"},
	RuleHeadingSkip:       {"1.3.1"},
	RuleHeadingMultipleH1: {"1.3.1"},
	RuleHeadingStructure:  {"1.3.1"},
	RuleImageAlt:          {"1.1.1"},
	RuleFormLabel:         {"1.3.1", "3.3.2"},
	RuleFormRequired:      {"3.3.2"},
	RuleFormDescribedBy:   {"1.3.1"},
	RuleColorContrast:     {"1.4.3"},
}

var recommendations = map[string]string{
	RuleHeadingEmpty:      "Give the heading visible text or remove it",
	RuleHeadingSkip:       "Use consecutive heading levels; do not skip levels",
	RuleHeadingMultipleH1: "Use a single h1 per document and demote the others",
	RuleImageAlt:          "Add an alt attribute describing the image, or alt=\"\" for decorative images",
	RuleFormLabel:         "Associate the control with a <label for>, aria-label, or aria-labelledby",
	RuleFormRequired:      "Add aria-required=\"true\" to required fields",
	RuleFormDescribedBy:   "Point aria-describedby at an existing element id",
	RuleColorContrast:     "Increase the contrast between text and background to at least 4.5:1",
}
