package achievement

// Resolve walks the catalog in evaluation order and returns the codes that
// may newly unlock given the facts and the current unlock state. It is a
// pure function: callers persist the result. For each candidate it skips
// already-unlocked codes, unmet conditions, and codes whose prerequisite is
// still locked; a code unlocked earlier in the same pass counts as
// unlocked, so a full chain can fire in one call. A second call with the
// unlocks applied returns nothing.
func Resolve(defs []Definition, prereqs map[string]string, unlocked map[string]bool, f Facts) []string {
	byCode := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byCode[d.Code] = d
	}

	state := make(map[string]bool, len(unlocked))
	for code, ok := range unlocked {
		state[code] = ok
	}

	var newly []string
	for _, code := range evaluationOrder {
		def, ok := byCode[code]
		if !ok || def.Met == nil {
			// Malformed catalog entry: skip it rather than fail the pass.
			continue
		}
		if state[code] {
			continue
		}
		if !def.Met(f) {
			continue
		}
		if parent, ok := prereqs[code]; ok && !state[parent] {
			continue
		}
		state[code] = true
		newly = append(newly, code)
	}
	return newly
}
