package rewrite

import (
	"regexp"
	"strings"
)

// Precompiled patterns used by the line rules.
var (
	asyncNameBraceRe = regexp.MustCompile(`(async \w+) \{`)
	asyncArgsBraceRe = regexp.MustCompile(`(async \([^)]*\)) \{`)
	promiseArrowRe   = regexp.MustCompile(`\): Promise<([^>]+)>\s*=>\s*\{`)
	promiseMangledRe = regexp.MustCompile(`Promise<\s*=>\s*\{([^}]+)\}>`)
)

// DefaultRules returns the built-in rewrite table in application order.
//
// Ordering is a contract: the structural line rules run first, scoped to
// the lines their parse-failure diagnostics name, and the broader pattern
// rules run after so they cannot shadow a targeted repair. Token-level
// cleanups come last.
func DefaultRules() []Rule {
	return []Rule{
		// Structural repairs routed by parse-failure message.
		&LineRule{
			RuleID:          "missing-arrow",
			Summary:         "insert a missing => in an arrow function header",
			MessageContains: "'=>' expected",
			Rewrite: func(line string) (string, bool) {
				if asyncNameBraceRe.MatchString(line) {
					return asyncNameBraceRe.ReplaceAllString(line, "${1} => {"), true
				}
				if asyncArgsBraceRe.MatchString(line) {
					return asyncArgsBraceRe.ReplaceAllString(line, "${1} => {"), true
				}
				return line, false
			},
		},
		&LineRule{
			RuleID:          "method-arrow-signature",
			Summary:         "drop a stray => from a typed method signature",
			MessageContains: "'{' or ';' expected",
			Rewrite: func(line string) (string, bool) {
				if !strings.Contains(line, "): Promise<") || !strings.Contains(line, " => {") {
					return line, false
				}
				return promiseArrowRe.ReplaceAllString(line, "): Promise<${1}> {"), true
			},
		},
		&LineRule{
			RuleID:          "mangled-promise-type",
			Summary:         "repair a Promise type annotation swallowed by an arrow",
			MessageContains: "'>' expected",
			Rewrite: func(line string) (string, bool) {
				if !promiseMangledRe.MatchString(line) {
					return line, false
				}
				return promiseMangledRe.ReplaceAllString(line, "Promise<{${1}}>"), true
			},
		},
		&LineRule{
			RuleID:          "empty-catch-binding",
			Summary:         "add the missing parameter to an empty catch clause",
			MessageContains: "Identifier expected",
			Rewrite: func(line string) (string, bool) {
				if !strings.Contains(line, "} catch () {") {
					return line, false
				}
				return strings.ReplaceAll(line, "} catch () {", "} catch (error) {"), true
			},
		},

		// Whole-content structural patterns.
		NewPatternRule(
			"promise-arrow-signature",
			"drop a stray => after a Promise return type anywhere in the file",
			`\): Promise<([^>]+)>\s*=>\s*\{`,
			"): Promise<${1}> {",
		),
		NewPatternRule(
			"async-call-arrow",
			"insert => in a parameterless async callback",
			`async \(\) \{`,
			"async () => {",
		),
		NewPatternRule(
			"catch-parameter",
			"add the missing parameter to any empty catch clause",
			`catch \(\) \{`,
			"catch (error) {",
		),
		NewPatternRule(
			"empty-switch-brace",
			"drop the stray closing brace after an empty switch block",
			`(\bswitch\b[^\n]*\{[^\n]*\n)[ \t]*\}[ \t]*\n`,
			"${1}",
		),

		// Token-level cleanups.
		NewPatternRule(
			"unused-catch-var",
			"rename an unused _error catch binding to _",
			`(\bcatch\s*\(\s*)_error(\s*\)\s*\{)`,
			"${1}_${2}",
		),
		NewPatternRule(
			"unused-catch-var-typed",
			"rename an unused typed _error catch binding to _",
			`(\bcatch\s*\(\s*)_error(\s*:\s*\w+\s*\)\s*\{)`,
			"${1}_${2}",
		),
		NewPatternRule(
			"no-explicit-any",
			"replace a type annotation of any with unknown",
			`: any\b`,
			": unknown",
		),
		NewPatternRule(
			"no-any-assertion",
			"replace an as any assertion with as unknown",
			` as any\b`,
			" as unknown",
		),
		NewPatternRule(
			"no-any-return",
			"replace an any return type with unknown",
			`=> any\b`,
			"=> unknown",
		),
	}
}

// DefaultEngine returns an Engine loaded with the built-in rule table.
func DefaultEngine() *Engine {
	return NewEngine(DefaultRules())
}
