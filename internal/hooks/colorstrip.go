package hooks

// defaultStripColor is the identity transform; the ANSI color renderer is
// an injected string transform. Content supplies the real renderer by
// replacing CoreHooks.StripColor.
func defaultStripColor(s string) string { return s }
