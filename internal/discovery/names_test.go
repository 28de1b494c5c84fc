package discovery

import "testing"

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"BtnAcceptOffer":    "Accept Offer",
		"toggle_auto_pause": "auto pause",
		"SliderMasterVol":   "Master Vol",
		"Close":             "Close",
		"btn":               "btn", // a bare affix keeps its name rather than vanish
	}
	for in, want := range cases {
		if got := CleanName(in); got != want {
			t.Fatalf("CleanName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHintMatching(t *testing.T) {
	h := DefaultHints()
	if !h.ignored("Scrollbar_Vertical") {
		t.Fatalf("scrollbar must be ignored")
	}
	if !h.ignored("ItemTemplate") {
		t.Fatalf("templates must be ignored")
	}
	if h.ignored("ButtonAccept") {
		t.Fatalf("plain buttons must not be ignored")
	}
	if !h.DismissLike("BtnCancelTrade") {
		t.Fatalf("cancel buttons are dismiss-like")
	}
	if !h.BlendLike("FullscreenBlend") {
		t.Fatalf("blend surface must match")
	}
	if !h.panelLike("ContentRoot") {
		t.Fatalf("content nodes are panel-like")
	}
}
