package normalize

// LegacyNames maps a historical country name to its current name. Rewrites
// are applied once per value; chains (A -> B -> C) are not followed.
type LegacyNames map[string]string

// DefaultLegacyNames returns the built-in mapping.
func DefaultLegacyNames() LegacyNames {
	return LegacyNames{"West Germany": "Germany"}
}

// Rewrite returns the current name for name and whether it changed.
func (l LegacyNames) Rewrite(name string) (string, bool) {
	if to, ok := l[name]; ok && to != name {
		return to, true
	}
	return name, false
}

// Clone returns an independent copy.
func (l LegacyNames) Clone() LegacyNames {
	out := make(LegacyNames, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
