package terraform

import "regexp"

// ansiEscape matches two-byte escape forms (ESC @ through ESC _) and
// CSI sequences (ESC [ parameter bytes, intermediate bytes, final byte).
var ansiEscape = regexp.MustCompile("\x1b" + `(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

// Strip removes terminal escape sequences from captured tool output so it is
// safe to render as plain text. It never fails on malformed or truncated
// sequences (those are left in place) and is idempotent: stripping already
// clean text returns it unchanged. Replacement repeats until a fixpoint, so
// removing one sequence cannot splice the surrounding bytes into another.
func Strip(s string) string {
	for {
		out := ansiEscape.ReplaceAllString(s, "")
		if out == s {
			return s
		}
		s = out
	}
}
