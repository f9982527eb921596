package conform

import (
	"sort"
	"sync"

	"github.com/treematch/conform-go/ir"
)

// Named variants are object-like nodes whose tag marks behavior beyond a
// plain object or array, e.g. a node standing in for a regular-expression
// literal. A reference carrying a registered variant tag requires the
// candidate to carry the very same tag; unregistered tags are ignored so
// producers may annotate trees freely without affecting conformance.
var (
	variantMu  sync.RWMutex
	variantSet = map[string]bool{
		"!regexp": true,
	}
)

// RegisterVariant adds tag to the recognized variant set. Tags are
// "!"-prefixed, e.g. "!bigint".
func RegisterVariant(tag string) {
	variantMu.Lock()
	defer variantMu.Unlock()
	variantSet[tag] = true
}

// Variants returns the recognized variant tags in sorted order.
func Variants() []string {
	variantMu.RLock()
	defer variantMu.RUnlock()
	res := make([]string, 0, len(variantSet))
	for tag := range variantSet {
		res = append(res, tag)
	}
	sort.Strings(res)
	return res
}

// variantOf returns the registered variant tag of an object-like node,
// or "", false for plain objects, arrays, and unregistered tags.
func variantOf(n *ir.Node) (string, bool) {
	if n == nil || n.Tag == "" {
		return "", false
	}
	variantMu.RLock()
	defer variantMu.RUnlock()
	if !variantSet[n.Tag] {
		return "", false
	}
	return n.Tag, true
}
