// Package protocol defines the JSON-RPC surface of the acuity daemon:
// method names and the wire shapes of their parameters and results.
package protocol

import "time"

const (
	MethodAuditRun      = "audit.run"
	MethodAuditFile     = "audit.file"
	MethodContrastCheck = "contrast.check"
	MethodPrefsGet      = "prefs.get"
	MethodPrefsSet      = "prefs.set"
	MethodHealth        = "health"
)

type AuditRunParams struct {
	HTML string `json:"html"`
}

type AuditFileParams struct {
	Path string `json:"path"`
}

type Finding struct {
	ID             string   `json:"id"`
	Rule           string   `json:"rule"`
	Severity       string   `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
	Target         string   `json:"target"`
	WCAGRefs       []string `json:"wcagReferences,omitempty"`
}

type Summary struct {
	Critical int `json:"critical"`
	Serious  int `json:"serious"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
	Passed   int `json:"passed"`
}

type AuditResult struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Findings  []Finding `json:"findings"`
	Summary   Summary   `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
	Markdown  string    `json:"markdown"`
}

type ContrastParams struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

type ContrastResult struct {
	Ratio  float64 `json:"ratio"`
	Level  string  `json:"level"`
	Passes bool    `json:"passes"`
}

type Preferences struct {
	Contrast     string `json:"contrast"`
	Motion       string `json:"motion"`
	TextSize     string `json:"textSize"`
	FocusSize    string `json:"focusSize"`
	ColorVision  string `json:"colorVision"`
	ScreenReader bool   `json:"screenReader"`
	KeyboardOnly bool   `json:"keyboardOnly"`
}

type HealthResult struct {
	Status   string   `json:"status"`
	Version  string   `json:"version"`
	Uptime   string   `json:"uptime"`
	Auditors []string `json:"auditors"`
}
