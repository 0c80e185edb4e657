package models

// allowed reports whether to is reachable from from in the given table.
func allowed(table map[string][]string, from, to string) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}
