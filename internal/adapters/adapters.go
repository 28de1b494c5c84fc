// Package adapters reads and mutates the host's domain services through
// the reflection layer. Every adapter resolves its member handles lazily
// on first use, fetches service instances fresh on every call, and
// degrades to empty results when the host is unavailable. Action methods
// never invoke a mutator blind: they compute the failure reason first so
// the caller has something concrete to speak.
package adapters

import (
	"fmt"

	"github.com/appengine-ltd/storm-access/internal/hostapi"
	"github.com/appengine-ltd/storm-access/internal/reflectcache"
)

// hasComponent reports whether root carries a component of the named host
// type. Popup detection works this way: every feature popup is tagged
// with a marker component, and the marker's runtime type name is the one
// thing stable enough to key on.
func hasComponent(cache *reflectcache.Cache, root hostapi.Node, typeName string) bool {
	if root == nil {
		return false
	}
	th := cache.Type(typeName)
	if !th.Valid() {
		return false
	}
	for _, comp := range root.Components() {
		if th.Matches(comp) {
			return true
		}
	}
	return false
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
