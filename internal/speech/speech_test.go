package speech

import "testing"

func TestNavigationSpeechInterruptsAndMapsAreGated(t *testing.T) {
	tr := NewTranscript(0)
	a := NewAnnouncer(tr, Options{DisabledCategories: []Category{CategoryMap}}, nil)

	a.Say(CategoryNavigation, "Trade Routes popup")
	if tr.Last() != "Trade Routes popup" {
		t.Fatalf("navigation speech must reach the backend immediately, got %q", tr.Last())
	}
	if tr.Stops() != 1 {
		t.Fatalf("navigation speech must interrupt, stops=%d", tr.Stops())
	}

	a.Say(CategoryMap, "row 3 column 4")
	if tr.Last() != "Trade Routes popup" {
		t.Fatalf("muted category must not be spoken")
	}

	a.SetEnabled(CategoryMap, true)
	a.Say(CategoryMap, "row 3 column 4")
	if tr.Last() != "row 3 column 4" {
		t.Fatalf("re-enabled category must speak, got %q", tr.Last())
	}
}

func TestAmbientSpeechQueuesUntilFlush(t *testing.T) {
	tr := NewTranscript(0)
	a := NewAnnouncer(tr, Options{}, nil)

	a.Say(CategoryAmbient, "a trader has arrived")
	if tr.Last() != "" {
		t.Fatalf("ambient speech must wait for flush")
	}
	a.Flush()
	if tr.Last() != "a trader has arrived" {
		t.Fatalf("flush must deliver the queued utterance, got %q", tr.Last())
	}

	a.Say(CategoryAmbient, "storm approaching")
	a.Say(CategoryNavigation, "Settings menu")
	a.Flush()
	if tr.Last() != "Settings menu" {
		t.Fatalf("navigation speech must clear queued ambient speech")
	}
	if got := len(tr.Lines()); got != 2 {
		t.Fatalf("expected 2 spoken lines, got %d: %v", got, tr.Lines())
	}
}

func TestBlankAndNilSafe(t *testing.T) {
	var a *Announcer
	a.Say(CategoryNavigation, "ignored")
	a.Flush()
	a.Silence()

	tr := NewTranscript(0)
	real := NewAnnouncer(tr, Options{}, nil)
	real.Say(CategoryNavigation, "   ")
	if len(tr.Lines()) != 0 {
		t.Fatalf("blank utterances must be dropped")
	}
}
