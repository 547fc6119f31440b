package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/openacuity/acuity/internal/dom"
)

// ImageAltAuditor checks image alternative text. An image with alt=""
// counts as correctly marked decorative, even without an explicit
// presentation role.
type ImageAltAuditor struct{}

const maxAltLength = 125

var altPlaceholderTokens = []string{"image", "photo", "picture", "img"}

var altRedundantPrefixes = []string{"image of", "picture of"}

func (a *ImageAltAuditor) Name() string { return "image-alt" }

func (a *ImageAltAuditor) Scan(doc *dom.Document) []Finding {
	var findings []Finding

	for _, img := range doc.Images() {
		if !img.HasAttr("alt") {
			findings = append(findings, newFinding(RuleImageAlt, SeverityCritical, img,
				"Image is missing an alt attribute"))
			continue
		}

		alt := strings.TrimSpace(img.Attr("alt"))
		if alt == "" {
			findings = append(findings, newFinding(RuleImageAlt, SeverityPass, img,
				"Image is marked decorative with empty alt text"))
			continue
		}

		violations := 0

		if token := placeholderToken(alt); token != "" {
			findings = append(findings, newFinding(RuleImageAlt, SeveritySerious, img,
				fmt.Sprintf("Alt text contains the placeholder word %q", token)))
			violations++
		}

		if prefix := redundantPrefix(alt); prefix != "" {
			findings = append(findings, newFinding(RuleImageAlt, SeverityModerate, img,
				fmt.Sprintf("Alt text starts with the redundant phrase %q", prefix)))
			violations++
		}

		if utf8.RuneCountInString(alt) > maxAltLength {
			findings = append(findings, newFinding(RuleImageAlt, SeverityMinor, img,
				fmt.Sprintf("Alt text is %d characters long; keep it under %d",
					utf8.RuneCountInString(alt), maxAltLength)))
			violations++
		}

		if violations == 0 {
			findings = append(findings, newFinding(RuleImageAlt, SeverityPass, img,
				"Image has appropriate alternative text"))
		}
	}

	return findings
}

// placeholderToken reports the first placeholder word appearing
// standalone in the alt text.
func placeholderToken(alt string) string {
	for _, word := range strings.Fields(alt) {
		word = strings.Trim(word, ".,;:!?\"'()")
		for _, token := range altPlaceholderTokens {
			if strings.EqualFold(word, token) {
				return token
			}
		}
	}
	return ""
}

func redundantPrefix(alt string) string {
	lower := strings.ToLower(alt)
	for _, prefix := range altRedundantPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return prefix
		}
	}
	return ""
}
