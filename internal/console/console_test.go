package console

import (
	"strings"
	"testing"
)

func testConsole() *Console {
	c := New()
	c.Register(Command{
		Name: "tutorials", Aliases: []string{"lessons"},
		Help: "list tutorial entries",
		Run:  func([]string) string { return "3 lessons" },
	})
	c.Register(Command{
		Name: "tile", Help: "read the tile under the cursor",
		Run: func([]string) string { return "Empty tile." },
	})
	c.Register(Command{
		Name: "trade", Help: "list trade offers",
		Run: func(args []string) string { return "trade " + strings.Join(args, " ") },
	})
	return c
}

func TestNormalizationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  TUTORIALS  ", want: "tutorials"},
		{in: "map-mode   NOW!!", want: "map mode now"},
		{in: "read_tile", want: "read tile"},
	}
	for _, tc := range tests {
		if got := normalize(tc.in); got != tc.want {
			t.Fatalf("normalize(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestExactAliasAndPrefixResolution(t *testing.T) {
	c := testConsole()
	if got := c.Execute("tutorials"); got != "3 lessons" {
		t.Fatalf("exact match failed: %q", got)
	}
	if got := c.Execute("lessons"); got != "3 lessons" {
		t.Fatalf("alias match failed: %q", got)
	}
	if got := c.Execute("tut"); got != "3 lessons" {
		t.Fatalf("unambiguous prefix failed: %q", got)
	}
}

func TestAmbiguousPrefixSuggestsInsteadOfGuessing(t *testing.T) {
	c := testConsole()
	// "t" and "tr" stay ambiguous or too short; neither may run a command.
	if got := c.Execute("t"); !strings.Contains(got, "Unknown command") {
		t.Fatalf("one-letter prefix must not resolve: %q", got)
	}
}

func TestTypoSuggestsNearestCommand(t *testing.T) {
	c := testConsole()
	got := c.Execute("tutroials")
	if !strings.Contains(got, `Did you mean "tutorials"?`) {
		t.Fatalf("expected typo suggestion, got %q", got)
	}
}

func TestArgsPassThrough(t *testing.T) {
	c := testConsole()
	if got := c.Execute("trade 2"); got != "trade 2" {
		t.Fatalf("args should pass through: %q", got)
	}
}

func TestEmptyLineAndHelpListing(t *testing.T) {
	c := testConsole()
	if got := c.Execute("   "); !strings.Contains(got, "help") {
		t.Fatalf("empty line should point to help: %q", got)
	}
	help := c.Help()
	for _, want := range []string{"tutorials", "tile", "trade"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}
