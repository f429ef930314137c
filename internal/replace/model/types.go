// Package model defines the normalized match representation shared by the
// search backends adapter, the replace planner, and the state store.
package model

// SearchKind selects how SearchText.Text is interpreted by the regex
// backend (and, for AstGrep, routes to the syntactic backend instead).
type SearchKind int

const (
	Simple SearchKind = iota
	MatchCase
	MatchWholeWord
	MatchCaseWholeWord
	Regex
	AstGrepSearch
)

func (k SearchKind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case MatchCase:
		return "MatchCase"
	case MatchWholeWord:
		return "MatchWholeWord"
	case MatchCaseWholeWord:
		return "MatchCaseWholeWord"
	case Regex:
		return "Regex"
	case AstGrepSearch:
		return "AstGrep"
	default:
		return "Unknown"
	}
}

// ReplaceKind selects how replacement text is substituted into matched
// lines.
type ReplaceKind int

const (
	ReplaceSimple ReplaceKind = iota
	PreserveCase
	DeleteLine
	AstGrepReplace
)

func (k ReplaceKind) String() string {
	switch k {
	case ReplaceSimple:
		return "Simple"
	case PreserveCase:
		return "PreserveCase"
	case DeleteLine:
		return "DeleteLine"
	case AstGrepReplace:
		return "AstGrep"
	default:
		return "Unknown"
	}
}

// SearchText is the user's query: raw text plus how it should be matched.
type SearchText struct {
	Text string
	Kind SearchKind
}

// ReplaceText is the user's replacement: raw text plus how it should be
// substituted.
type ReplaceText struct {
	Text string
	Kind ReplaceKind
}

// SubMatch is a byte range within a matched line, or within LineStart for
// a multi-line syntactic match.
type SubMatch struct {
	Start     int
	End       int
	LineStart uint32
	LineEnd   uint32
}

// Match is one normalized match, carrying enough context to render a
// preview without re-reading the file.
type Match struct {
	LineNumber     uint32
	Lines          string
	ContextBefore  []string
	ContextAfter   []string
	AbsoluteOffset uint64
	SubMatches     []SubMatch
	// Replacement is precomputed by the AST backend only; nil for regex
	// matches.
	Replacement *string
	// ByteEnd closes the [AbsoluteOffset, ByteEnd) span ast-grep matched,
	// letting the AST replace plan splice the replacement in by byte
	// range. Nil for regex matches.
	ByteEnd *uint64
}

// TotalSubMatches returns the number of submatches carried by this match.
func (m Match) TotalSubMatches() int {
	return len(m.SubMatches)
}

// FileResult groups every match found in one file.
type FileResult struct {
	Index        uint32
	Path         string
	Matches      []Match
	TotalMatches uint32
}

// Metadata is aggregate information about a completed search.
type Metadata struct {
	ElapsedNS         uint64
	MatchedLines      uint64
	Matches           uint64
	Searches          uint64
	SearchesWithMatch uint64
}

// SearchList is the ordered result of a completed search, plus aggregate
// metadata.
type SearchList struct {
	List     []FileResult
	Metadata Metadata
}

// Selection tracks which FileResult is active.
type Selection struct {
	SelectedFile *uint32
}

// Tab is one of the navigable top-level screens.
type Tab int

const (
	TabSearch Tab = iota
	TabReplace
	TabSearchResult
	TabPreview
)

// Mode governs whether keystrokes are routed into a focused text field
// (Input) or interpreted as navigation chords (Normal).
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
)

// FocusedScreen is the screen currently receiving input focus.
type FocusedScreen int

const (
	FocusSearchInput FocusedScreen = iota
	FocusReplaceInput
	FocusSearchResultList
	FocusPreview
	FocusConfirmEmptyReplaceDialog
	FocusConfirmNonVcsDialog
	FocusHelpDialog
)
