package terraform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripRemovesColorSequences(t *testing.T) {
	in := "\x1b[32m+ aws_s3_bucket.demo\x1b[0m will be created"
	require.Equal(t, "+ aws_s3_bucket.demo will be created", Strip(in))
}

func TestStripRemovesTwoByteEscapes(t *testing.T) {
	in := "before\x1b]after\x1b\\done"
	require.Equal(t, "beforeafterdone", Strip(in))
}

func TestStripIsIdentityOnPlainText(t *testing.T) {
	for _, in := range []string{
		"",
		"plain text, no escapes",
		"multi\nline\noutput",
		"unicode ✓ and tabs\there",
	} {
		require.Equal(t, in, Strip(in))
	}
}

func TestStripIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"no escapes at all",
		"\x1b[31mred\x1b[0m",
		"\x1b[1;32;40mstyled\x1b[m",
		// Truncated and malformed sequences must not panic and must stay stable.
		"\x1b",
		"\x1b[",
		"\x1b[31",
		"truncated at end \x1b[3",
		"\x1b[?25l cursor hidden \x1b[?25h",
		"nested \x1b[31m\x1b[1mdeep\x1b[0m\x1b[0m",
		// Interleaved: removing the inner sequence splices the outer one
		// back together, so a single pass would leave a live escape.
		"\x1b[3\x1b[0m1mred",
		"\x1b[3\x1b[3\x1b[0m1mred\x1b[0m1mred",
	}
	for _, in := range inputs {
		once := Strip(in)
		require.Equal(t, once, Strip(once), "input %q", in)
	}
}

func TestStripInterleavedSequencesLeaveNoEscapeBytes(t *testing.T) {
	out := Strip("\x1b[3\x1b[0m1mred")
	require.Equal(t, "red", out)
	require.NotContains(t, out, "\x1b")
}

func TestStripCursorMovement(t *testing.T) {
	in := "progress\x1b[2K\x1b[1Gdone"
	require.Equal(t, "progressdone", Strip(in))
}
