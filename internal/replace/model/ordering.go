package model

import "sort"

// SortMatches orders a file's matches by line number ascending, per the
// FileResult invariant.
func SortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LineNumber < matches[j].LineNumber
	})
}

// SortSubMatches orders a match's submatches by start offset ascending.
func SortSubMatches(subs []SubMatch) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Start < subs[j].Start
	})
}

// Less implements structural ordering on (path, line_number,
// submatch.start) for two matches belonging to possibly different files.
// Used to order matches across a whole SearchList for stable display.
func Less(aPath string, a Match, bPath string, b Match) bool {
	if aPath != bPath {
		return aPath < bPath
	}
	if a.LineNumber != b.LineNumber {
		return a.LineNumber < b.LineNumber
	}
	aStart, bStart := 0, 0
	if len(a.SubMatches) > 0 {
		aStart = a.SubMatches[0].Start
	}
	if len(b.SubMatches) > 0 {
		bStart = b.SubMatches[0].Start
	}
	return aStart < bStart
}

// RecomputeTotalMatches sets TotalMatches to the sum of each match's
// submatch count, restoring the FileResult invariant after mutation.
func RecomputeTotalMatches(fr *FileResult) {
	var total uint32
	for _, m := range fr.Matches {
		total += uint32(len(m.SubMatches))
	}
	fr.TotalMatches = total
}
