package audit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/openacuity/acuity/internal/color"
	"github.com/openacuity/acuity/internal/dom"
)

// ContrastAuditor checks inline color declarations. It can only see
// hex pairs declared directly on an element; computed styles belong to
// the host environment.
type ContrastAuditor struct{}

var (
	inlineColorRe = regexp.MustCompile(`(?i)(?:^|;)\s*color\s*:\s*([^;]+)`)
	inlineBgRe    = regexp.MustCompile(`(?i)background(?:-color)?\s*:\s*([^;]+)`)
)

func (a *ContrastAuditor) Name() string { return "color-contrast" }

func (a *ContrastAuditor) Scan(doc *dom.Document) []Finding {
	var findings []Finding

	for _, el := range doc.Find(func(e *dom.Element) bool { return e.HasAttr("style") }) {
		style := el.Attr("style")

		fg := extractDeclaration(inlineColorRe, style)
		bg := extractDeclaration(inlineBgRe, style)
		if fg == "" || bg == "" {
			continue
		}

		res, err := color.CheckHex(fg, bg)
		if err != nil {
			// Per-element isolation: an unparseable declaration becomes
			// a warning instead of aborting the audit run.
			findings = append(findings, newFinding(RuleColorContrast, SeverityModerate, el,
				fmt.Sprintf("Could not verify contrast of %q on %q: %v", fg, bg, err)))
			continue
		}

		if !res.Passes {
			findings = append(findings, newFinding(RuleColorContrast, SeveritySerious, el,
				fmt.Sprintf("Contrast ratio %.2f:1 is below the 4.5:1 minimum", res.Ratio)))
			continue
		}

		findings = append(findings, newFinding(RuleColorContrast, SeverityPass, el,
			fmt.Sprintf("Contrast ratio %.2f:1 meets WCAG %s", res.Ratio, res.Level)))
	}

	return findings
}

func extractDeclaration(re *regexp.Regexp, style string) string {
	m := re.FindStringSubmatch(style)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
