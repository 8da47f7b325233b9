// Package redact masks secret-looking text before it is written into a document.
// It is a heuristic safety net, not a security boundary.
package redact

import (
	"fmt"
	"regexp"
)

// Placeholder replaces every redacted value.
const Placeholder = "[REDACTED]"

// Rule is a single regex substitution. Replace may reference capture groups.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// Redactor applies its rules in order.
type Redactor struct {
	rules []Rule
}

// pemKeyTypes are the private key headers recognised; "" matches "PRIVATE KEY".
var pemKeyTypes = []string{"", "RSA ", "EC ", "DSA ", "OPENSSH ", "ENCRYPTED "}

// New returns a Redactor with the given rules.
func New(rules ...Rule) *Redactor {
	return &Redactor{rules: rules}
}

// Default returns the built-in rule set: password assignments, api key/secret/token
// assignments, PEM private key blocks, then long base64 runs.
func Default() *Redactor {
	rules := []Rule{
		{
			Name:    "password",
			Pattern: regexp.MustCompile(`(?i)\b([a-z0-9_.-]*(?:password|passwd|pwd))(["']?\s*[:=]\s*)(["']?)[^\s"',;]+`),
			Replace: "${1}${2}${3}" + Placeholder,
		},
		{
			Name:    "secret",
			Pattern: regexp.MustCompile(`(?i)\b([a-z0-9_.-]*(?:api[_-]?key|secret|token))(["']?\s*[:=]\s*)(["']?)[^\s"',;]+`),
			Replace: "${1}${2}${3}" + Placeholder,
		},
	}

	// RE2 has no backreferences, so BEGIN/END pairing is enforced with one rule per key type.
	for _, kind := range pemKeyTypes {
		begin := regexp.QuoteMeta(fmt.Sprintf("-----BEGIN %sPRIVATE KEY-----", kind))
		end := regexp.QuoteMeta(fmt.Sprintf("-----END %sPRIVATE KEY-----", kind))
		rules = append(rules, Rule{
			Name:    "pem " + kind + "private key",
			Pattern: regexp.MustCompile(`(?s)(` + begin + `).*?(` + end + `)`),
			Replace: "${1}\n" + Placeholder + "\n${2}",
		})
	}

	rules = append(rules, Rule{
		Name:    "base64",
		Pattern: regexp.MustCompile(`[A-Za-z0-9+/]{40,}={0,2}`),
		Replace: Placeholder,
	})

	return New(rules...)
}

// Redact returns text with every rule applied in order.
func (r *Redactor) Redact(text string) string {
	for _, rule := range r.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replace)
	}
	return text
}

// Rules returns the rule names in application order.
func (r *Redactor) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}
