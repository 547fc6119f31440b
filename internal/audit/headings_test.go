package audit

import (
	"testing"

	"github.com/openacuity/acuity/internal/dom"
)

func scanHTML(t *testing.T, a Auditor, html string) []Finding {
	t.Helper()
	doc, err := dom.ParseString(html)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return a.Scan(doc)
}

func violations(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Severity.IsViolation() {
			out = append(out, f)
		}
	}
	return out
}

func TestHeadingsWellFormed(t *testing.T) {
	findings := scanHTML(t, &HeadingAuditor{},
		`<h1>One</h1><h2>Two</h2><h3>Three</h3>`)

	if v := violations(findings); len(v) != 0 {
		t.Errorf("expected no violations, got %+v", v)
	}

	passes := 0
	for _, f := range findings {
		if f.Severity == SeverityPass {
			passes++
			// The pass gets its own rule id; sharing one with a
			// violation would make rule-keyed consumers ambiguous.
			if f.Rule != RuleHeadingStructure {
				t.Errorf("pass rule = %s, want %s", f.Rule, RuleHeadingStructure)
			}
		}
	}
	if passes != 1 {
		t.Errorf("expected 1 passing finding, got %d", passes)
	}
}

func TestHeadingsSkip(t *testing.T) {
	findings := scanHTML(t, &HeadingAuditor{}, `<h1>One</h1><h3>Three</h3>`)

	v := violations(findings)
	if len(v) != 1 {
		t.Fatalf("expected exactly 1 violation, got %d: %+v", len(v), v)
	}
	if v[0].Rule != RuleHeadingSkip {
		t.Errorf("rule = %s, want %s", v[0].Rule, RuleHeadingSkip)
	}
	if v[0].Target != "html > body > h3" {
		t.Errorf("skip should be attributed to the h3, got %q", v[0].Target)
	}
}

func TestHeadingsDescendingIsFine(t *testing.T) {
	// h3 back down to h2 is not a skip; only upward jumps count.
	findings := scanHTML(t, &HeadingAuditor{},
		`<h1>a</h1><h2>b</h2><h3>c</h3><h2>d</h2>`)

	if v := violations(findings); len(v) != 0 {
		t.Errorf("expected no violations, got %+v", v)
	}
}

func TestHeadingsEmpty(t *testing.T) {
	findings := scanHTML(t, &HeadingAuditor{}, `<h1>Title</h1><h2>   </h2>`)

	v := violations(findings)
	if len(v) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(v))
	}
	if v[0].Rule != RuleHeadingEmpty {
		t.Errorf("rule = %s, want %s", v[0].Rule, RuleHeadingEmpty)
	}
	if v[0].Severity != SeveritySerious {
		t.Errorf("severity = %s, want serious", v[0].Severity)
	}
}

func TestHeadingsMultipleH1(t *testing.T) {
	findings := scanHTML(t, &HeadingAuditor{}, `<h1>One</h1><h1>Another</h1><h1>Third</h1>`)

	count := 0
	for _, f := range violations(findings) {
		if f.Rule != RuleHeadingMultipleH1 {
			t.Errorf("unexpected rule %s", f.Rule)
		}
		count++
	}
	// Every h1 after the first is flagged.
	if count != 2 {
		t.Errorf("expected 2 multiple-h1 findings, got %d", count)
	}
}

func TestHeadingsNoHeadings(t *testing.T) {
	findings := scanHTML(t, &HeadingAuditor{}, `<p>Just text</p>`)
	if len(findings) != 0 {
		t.Errorf("no headings means no findings, got %+v", findings)
	}
}
