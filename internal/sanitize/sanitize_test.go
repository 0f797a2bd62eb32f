package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_RemovesScriptBlocks(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"script before text":   {"<script>alert(1)</script>Real Title", "Real Title"},
		"uppercase script":     {"<SCRIPT src=x>bad()</SCRIPT>ok", "ok"},
		"mixed case closing":   {"<ScRiPt>x</sCrIpT>clean", "clean"},
		"script with attrs":    {`<script type="text/javascript">steal()</script>hello`, "hello"},
		"unterminated script":  {"<script>alert(1) no closing", "alert(1) no closing"},
		"no closing bracket":   {"<script src=x onerror=alert(1)", ""},
		"dangling after text":  {"payload<SCRIPT defer", "payload"},
		"two blocks":           {"<script>a</script>mid<script>b</script>", "mid"},
		"whitespace in close":  {"<script>x</script >done", "done"},
		"payload between tags": {"<script><p>inner</p></script>after", "after"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

func TestSanitize_StripsAllMarkup(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"simple tags":    {"<b>bold</b> and <i>italic</i>", "bold and italic"},
		"self closing":   {"line<br/>break", "linebreak"},
		"img onerror":    {`<img src=x onerror="alert(1)">caption`, "caption"},
		"plain text":     {"no markup here", "no markup here"},
		"trims result":   {"  <p>padded</p>  ", "padded"},
		"empty input":    {"", ""},
		"only markup":    {"<div><span></span></div>", ""},
		"stray brackets": {"a < b and c > d", "a  d"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.in))
		})
	}
}

// Adversarial inputs where stripping one layer of markup uncovers another.
// The output must never contain a script marker or anything tag-like.
func TestSanitize_NestedEvasion(t *testing.T) {
	inputs := []string{
		"<<b>script>alert(1)<</b>/script>",
		"<scr<script></script>ipt>alert(1)</script>",
		"<<div>script>payload</script>",
		"<b><script>nested</b></script>",
		"<script>outer<script>inner</script>still</script>",
		"<script src=x onerror=alert(1)",
		"payload<SCRIPT defer",
		"a<scriptXYZ no closing bracket",
		"<b>text</b><script async",
	}

	for _, in := range inputs {
		out := Sanitize(in)
		assert.NotContains(t, strings.ToLower(out), "<script", "input: %q", in)
		assert.NotRegexp(t, `<[^>]*>`, out, "input: %q", in)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>Real Title",
		"<<b>script>alert(1)</b>",
		"<script src=x onerror=alert(1)",
		"plain text",
		"  spaced  ",
		"<div><p>nested <b>markup</b></p></div>",
		"",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		assert.Equal(t, once, twice, "input: %q", in)
	}
}
