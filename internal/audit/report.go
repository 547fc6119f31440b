package audit

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders a report in the fixed document format consumed by
// downstream tooling. The section headers are a compatibility surface:
// do not reword them.
func Markdown(r *Report) string {
	var sb strings.Builder

	var errors, warnings, passes []Finding
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityCritical, SeveritySerious:
			errors = append(errors, f)
		case SeverityModerate, SeverityMinor:
			warnings = append(warnings, f)
		case SeverityPass:
			passes = append(passes, f)
		}
	}

	sb.WriteString("# Accessibility Audit Report\n\n")
	sb.WriteString(fmt.Sprintf("**Score:** %d/100\n", r.Score))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", r.Timestamp.Format(time.RFC3339)))

	sb.WriteString(fmt.Sprintf("### ❌ Errors (%d)\n\n", len(errors)))
	writeFindings(&sb, errors, true)

	sb.WriteString(fmt.Sprintf("### ⚠️ Warnings (%d)\n\n", len(warnings)))
	writeFindings(&sb, warnings, true)

	sb.WriteString(fmt.Sprintf("### ✅ Passed Tests (%d)\n\n", len(passes)))
	writeFindings(&sb, passes, false)

	sb.WriteString(nextStepsFooter)

	return sb.String()
}

func writeFindings(sb *strings.Builder, findings []Finding, withFix bool) {
	if len(findings) == 0 {
		sb.WriteString("_None_\n\n")
		return
	}

	for _, f := range findings {
		if f.Target != "" {
			sb.WriteString(fmt.Sprintf("- **%s** `%s`: %s\n", f.Rule, f.Target, f.Message))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", f.Rule, f.Message))
		}
		if withFix && f.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("  - Fix: %s\n", f.Recommendation))
		}
		if withFix && len(f.WCAGRefs) > 0 {
			sb.WriteString(fmt.Sprintf("  - WCAG: %s\n", strings.Join(f.WCAGRefs, ", ")))
		}
	}
	sb.WriteString("\n")
}

const nextStepsFooter = `## Next Steps

1. Fix all errors before release.
2. Review each warning and document intentional exceptions.
3. Re-run the audit after every change.
`
