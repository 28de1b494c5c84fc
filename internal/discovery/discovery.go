// Package discovery walks a host popup or menu subtree and infers a
// keyboard-navigable structure from it: panels, tab bars, and interactive
// elements with spoken labels. The hierarchy was never designed for screen
// readers, so everything here is heuristic; a malformed node is skipped,
// never fatal.
package discovery

import (
	"log/slog"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// PanelKind distinguishes real host panels from the synthetic panels a
// tabbed popup is presented as.
type PanelKind int

const (
	PanelRoot PanelKind = iota
	PanelNamed
	PanelTabBar
	PanelTabContent
)

// Panel is one logical grouping of interactive controls. TabContent panels
// carry no node: the active tab's content is re-resolved on every query so
// host-driven tab switches stay in sync.
type Panel struct {
	Kind  PanelKind
	Node  hostapi.Node
	Label string
}

// PanelSet is the derived structure of one popup or menu.
type PanelSet struct {
	Root       hostapi.Node
	Panels     []Panel
	TabButtons []hostapi.Node
	IsTabbed   bool

	tabsNode hostapi.Node
	tabsComp any
}

// Discoverer classifies host nodes using cached member probes. It holds no
// per-popup state; callers keep the PanelSet and re-query as needed.
type Discoverer struct {
	cache *reflectcache.Cache
	acc   *reflectcache.Accessor
	hints NameHints
	log   *slog.Logger
}

func New(cache *reflectcache.Cache, acc *reflectcache.Accessor, hints NameHints, log *slog.Logger) *Discoverer {
	if log == nil {
		log = slog.Default()
	}
	return &Discoverer{cache: cache, acc: acc, hints: hints, log: log}
}

// DiscoverPanels derives the panel structure of root. Tabbed popups become
// exactly two panels: the tab bar and the active tab's content. Otherwise
// panel-named descendants that hold at least one valid element become
// panels (topmost only), and a popup with no such descendants is one panel.
func (d *Discoverer) DiscoverPanels(root hostapi.Node, popupContext bool) PanelSet {
	ps := PanelSet{Root: root}
	if d == nil || root == nil {
		return ps
	}

	if node, comp, buttons := d.findTabs(root); comp != nil && len(buttons) >= 2 {
		ps.IsTabbed = true
		ps.TabButtons = buttons
		ps.tabsNode = node
		ps.tabsComp = comp
		ps.Panels = []Panel{
			{Kind: PanelTabBar, Node: node, Label: "Tabs"},
			{Kind: PanelTabContent, Label: "Tab content"},
		}
		return ps
	}

	var kept []Panel
	for _, n := range hostapi.Descendants(root) {
		if !d.hints.panelLike(n.Name()) {
			continue
		}
		if underAny(n, kept) {
			continue
		}
		if len(d.elementsUnder(n, popupContext, root)) == 0 {
			continue
		}
		kept = append(kept, Panel{Kind: PanelNamed, Node: n, Label: CleanName(n.Name())})
	}
	if len(kept) == 0 {
		kept = []Panel{{Kind: PanelRoot, Node: root, Label: CleanName(root.Name())}}
	}
	ps.Panels = kept
	return ps
}

// ElementsInPanel lists the interactive elements of panel idx, re-resolving
// tab content against the controller's current tab on every call.
func (d *Discoverer) ElementsInPanel(ps PanelSet, idx int, popupContext bool) []Element {
	if d == nil || idx < 0 || idx >= len(ps.Panels) {
		return nil
	}
	p := ps.Panels[idx]
	switch p.Kind {
	case PanelTabBar:
		var out []Element
		for _, btn := range ps.TabButtons {
			if el, ok := d.elementAt(btn, popupContext, ps.Root); ok {
				out = append(out, el)
			}
		}
		return out
	case PanelTabContent:
		content := d.activeTabContent(ps)
		if content == nil {
			return nil
		}
		return d.elementsUnder(content, popupContext, ps.Root)
	default:
		return d.elementsUnder(p.Node, popupContext, ps.Root)
	}
}

// PanelLabel names the panel for announcements, with tab-content panels
// named after the currently active tab's node.
func (d *Discoverer) PanelLabel(ps PanelSet, idx int) string {
	if idx < 0 || idx >= len(ps.Panels) {
		return ""
	}
	p := ps.Panels[idx]
	if p.Kind == PanelTabContent {
		if content := d.activeTabContent(ps); content != nil {
			return CleanName(content.Name())
		}
	}
	return p.Label
}

// findTabs locates a tabs-controller component in the subtree: any
// component exposing a tab-button list and a current-content reference.
func (d *Discoverer) findTabs(root hostapi.Node) (hostapi.Node, any, []hostapi.Node) {
	nodes := append([]hostapi.Node{root}, hostapi.Descendants(root)...)
	for _, n := range nodes {
		for _, comp := range n.Components() {
			th := d.cache.Of(comp)
			if !th.Valid() {
				continue
			}
			btnH := d.cache.Member(th, "TabButtons", reflectcache.KindField)
			curH := d.cache.Member(th, "CurrentContent", reflectcache.KindField)
			if !btnH.Valid() || !curH.Valid() {
				continue
			}
			var buttons []hostapi.Node
			for _, item := range d.acc.GetSlice(btnH, comp) {
				if bn, ok := item.(hostapi.Node); ok && bn != nil {
					buttons = append(buttons, bn)
				}
			}
			return n, comp, buttons
		}
	}
	return nil, nil, nil
}

// activeTabContent re-reads the controller's current reference; the host
// changes it when the user clicks a tab with the mouse.
func (d *Discoverer) activeTabContent(ps PanelSet) hostapi.Node {
	if ps.tabsComp == nil {
		return nil
	}
	th := d.cache.Of(ps.tabsComp)
	curH := d.cache.Member(th, "CurrentContent", reflectcache.KindField)
	v, ok := d.acc.Get(curH, ps.tabsComp)
	if !ok || v == nil {
		return nil
	}
	content, _ := v.(hostapi.Node)
	return content
}

func underAny(n hostapi.Node, kept []Panel) bool {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		for _, p := range kept {
			if hostapi.SameNode(cur, p.Node) {
				return true
			}
		}
	}
	return false
}
