package encode

type EncodeOption func(*EncState)

// Depth caps how many object-like levels are expanded; deeper content
// renders as "{...}" or "[...]". Negative means unlimited.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// Wire renders on a single line with comma separators.
func Wire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.colors = c.fill() }
}
