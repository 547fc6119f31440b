package audit

import (
	"fmt"

	"github.com/openacuity/acuity/internal/dom"
)

// HeadingAuditor checks document heading structure: no empty headings,
// no level jumps greater than one, and at most one h1.
type HeadingAuditor struct{}

func (a *HeadingAuditor) Name() string { return "headings" }

func (a *HeadingAuditor) Scan(doc *dom.Document) []Finding {
	var findings []Finding

	prevLevel := 0
	h1Count := 0
	violations := 0

	for _, h := range doc.Headings() {
		level := h.HeadingLevel()

		if h.Text() == "" {
			findings = append(findings, newFinding(RuleHeadingEmpty, SeveritySerious, h,
				fmt.Sprintf("Heading h%d has no text content", level)))
			violations++
		}

		if prevLevel > 0 && level > prevLevel+1 {
			findings = append(findings, newFinding(RuleHeadingSkip, SeverityModerate, h,
				fmt.Sprintf("Heading level jumps from h%d to h%d", prevLevel, level)))
			violations++
		}

		if level == 1 {
			h1Count++
			if h1Count > 1 {
				findings = append(findings, newFinding(RuleHeadingMultipleH1, SeverityModerate, h,
					"Document has more than one h1 heading"))
				violations++
			}
		}

		prevLevel = level
	}

	if violations == 0 && prevLevel > 0 {
		findings = append(findings, newFinding(RuleHeadingStructure, SeverityPass, nil,
			"Heading structure is well formed"))
	}

	return findings
}
