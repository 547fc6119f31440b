package audit

import "testing"

func TestFormControlLabeled(t *testing.T) {
	cases := []struct {
		name string
		html string
	}{
		{"label for", `<label for="email">Email</label><input id="email" type="text">`},
		{"aria-label", `<input type="text" aria-label="Search terms">`},
		{"aria-labelledby", `<span id="lbl">Amount</span><input type="text" aria-labelledby="lbl">`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			findings := scanHTML(t, &FormLabelAuditor{}, tc.html)
			if v := violations(findings); len(v) != 0 {
				t.Errorf("expected no violations, got %+v", v)
			}
		})
	}
}

func TestFormControlUnlabeled(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{}, `<input type="text" name="q">`)

	v := violations(findings)
	if len(v) != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", len(v), v)
	}
	if v[0].Rule != RuleFormLabel {
		t.Errorf("rule = %s, want %s", v[0].Rule, RuleFormLabel)
	}
	if v[0].Severity != SeveritySerious {
		t.Errorf("severity = %s, want serious", v[0].Severity)
	}
}

func TestFormLabelForWrongID(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{},
		`<label for="other">Name</label><input id="name" type="text">`)

	if v := violations(findings); len(v) != 1 || v[0].Rule != RuleFormLabel {
		t.Errorf("mismatched label/for should leave the control unlabeled, got %+v", v)
	}
}

func TestFormRequiredWithoutAria(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{},
		`<input type="text" aria-label="Name" required>`)

	v := violations(findings)
	if len(v) != 1 {
		t.Fatalf("expected 1 violation, got %d: %+v", len(v), v)
	}
	if v[0].Rule != RuleFormRequired {
		t.Errorf("rule = %s, want %s", v[0].Rule, RuleFormRequired)
	}
}

func TestFormRequiredWithAria(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{},
		`<input type="text" aria-label="Name" required aria-required="true">`)

	if v := violations(findings); len(v) != 0 {
		t.Errorf("expected no violations, got %+v", v)
	}
}

func TestFormDanglingDescribedBy(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{},
		`<input type="text" aria-label="Name" aria-describedby="hint gone">
		 <span id="hint">Use your legal name</span>`)

	v := violations(findings)
	if len(v) != 1 {
		t.Fatalf("expected 1 violation for the missing id, got %d: %+v", len(v), v)
	}
	if v[0].Rule != RuleFormDescribedBy {
		t.Errorf("rule = %s, want %s", v[0].Rule, RuleFormDescribedBy)
	}
}

func TestFormHiddenInputIgnored(t *testing.T) {
	findings := scanHTML(t, &FormLabelAuditor{}, `<input type="hidden" name="csrf" value="x">`)
	if len(findings) != 0 {
		t.Errorf("hidden inputs are not labelable, got %+v", findings)
	}
}
