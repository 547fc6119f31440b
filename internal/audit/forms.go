package audit

import (
	"fmt"
	"strings"

	"github.com/openacuity/acuity/internal/dom"
)

// FormLabelAuditor checks that every form control is programmatically
// labeled and that its aria references resolve.
type FormLabelAuditor struct{}

func (a *FormLabelAuditor) Name() string { return "form-labels" }

func (a *FormLabelAuditor) Scan(doc *dom.Document) []Finding {
	var findings []Finding

	labeledIDs := make(map[string]bool)
	for _, label := range doc.Find(func(e *dom.Element) bool { return e.Tag() == "label" }) {
		if target := label.Attr("for"); target != "" {
			labeledIDs[target] = true
		}
	}

	for _, control := range doc.FormControls() {
		violations := 0

		if !hasAccessibleName(control, labeledIDs) {
			findings = append(findings, newFinding(RuleFormLabel, SeveritySerious, control,
				fmt.Sprintf("Form control <%s> has no associated label", control.Tag())))
			violations++
		}

		if control.HasAttr("required") && !control.HasAttr("aria-required") {
			findings = append(findings, newFinding(RuleFormRequired, SeverityModerate, control,
				"Required field does not declare aria-required"))
			violations++
		}

		for _, ref := range strings.Fields(control.Attr("aria-describedby")) {
			if doc.ByID(ref) == nil {
				findings = append(findings, newFinding(RuleFormDescribedBy, SeverityMinor, control,
					fmt.Sprintf("aria-describedby references missing id %q", ref)))
				violations++
			}
		}

		if violations == 0 {
			findings = append(findings, newFinding(RuleFormLabel, SeverityPass, control,
				fmt.Sprintf("Form control <%s> is properly labeled", control.Tag())))
		}
	}

	return findings
}

func hasAccessibleName(control *dom.Element, labeledIDs map[string]bool) bool {
	if id := control.ID(); id != "" && labeledIDs[id] {
		return true
	}
	if strings.TrimSpace(control.Attr("aria-label")) != "" {
		return true
	}
	if strings.TrimSpace(control.Attr("aria-labelledby")) != "" {
		return true
	}
	return false
}
