// Package apply builds and executes replace plans against files on disk,
// for the three granularities the engine supports: whole result set, one
// file, or one match.
package apply

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/kvit-s/kvit-replace/internal/replace/diff"
	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// FileChange records one file's before/after diff after a successful
// replace.
type FileChange struct {
	Path string
	Diff diff.Result
}

// Result is the outcome of a replace operation across one or more files.
type Result struct {
	FilesChanged []FileChange
}

// Options threads the AST engine binary through to the AstGrep plan.
type Options struct {
	AstBinary string
}

// ReplaceAll applies search/replace across every FileResult in list. A
// file that fails is skipped and the remaining files are still
// processed; the first error is returned together with the files that
// did change.
func ReplaceAll(list model.SearchList, search model.SearchText, replace model.ReplaceText, opts Options) (Result, *errs.ReplaceError) {
	var result Result
	var firstErr *errs.ReplaceError
	for _, fr := range list.List {
		fc, err := replaceFileResult(fr, search, replace, opts)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if fc != nil {
			result.FilesChanged = append(result.FilesChanged, *fc)
		}
	}
	return result, firstErr
}

// ReplaceFile applies search/replace to a single FileResult.
func ReplaceFile(fr model.FileResult, search model.SearchText, replace model.ReplaceText, opts Options) (Result, *errs.ReplaceError) {
	fc, err := replaceFileResult(fr, search, replace, opts)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if fc != nil {
		result.FilesChanged = append(result.FilesChanged, *fc)
	}
	return result, nil
}

// ReplaceLine applies search/replace to a single Match within a
// FileResult, restricting the edit to that match's line.
func ReplaceLine(fr model.FileResult, matchIdx int, search model.SearchText, replace model.ReplaceText, opts Options) (Result, *errs.ReplaceError) {
	if matchIdx < 0 || matchIdx >= len(fr.Matches) {
		return Result{}, errs.Newf(errs.InvariantViolation, "match index %d out of range for file %q", matchIdx, fr.Path)
	}
	match := fr.Matches[matchIdx]

	if search.Kind == model.AstGrepSearch {
		fc, err := replaceAstLine(fr, match, replace, opts)
		if err != nil {
			return Result{}, err
		}
		var result Result
		if fc != nil {
			result.FilesChanged = append(result.FilesChanged, *fc)
		}
		return result, nil
	}

	oldContent, err := readFile(fr.Path)
	if err != nil {
		return Result{}, err
	}

	var newContent string
	if replace.Kind == model.DeleteLine {
		newContent = deleteLines(oldContent, []uint32{match.LineNumber})
	} else {
		re, reErr := buildRegex(search)
		if reErr != nil {
			return Result{}, errs.Wrap(errs.InvariantViolation, reErr)
		}
		newContent = replaceWithinLine(oldContent, match.LineNumber, re, replace)
	}

	if newContent == oldContent {
		return Result{}, nil
	}
	if writeErr := writeFile(fr.Path, newContent); writeErr != nil {
		return Result{}, writeErr
	}

	var result Result
	result.FilesChanged = append(result.FilesChanged, FileChange{
		Path: fr.Path,
		Diff: diff.Compute(fr.Path, oldContent, newContent),
	})
	return result, nil
}

func replaceFileResult(fr model.FileResult, search model.SearchText, replace model.ReplaceText, opts Options) (*FileChange, *errs.ReplaceError) {
	if search.Kind == model.AstGrepSearch {
		return replaceAstFile(fr, replace, opts)
	}

	oldContent, err := readFile(fr.Path)
	if err != nil {
		return nil, err
	}

	var newContent string
	if replace.Kind == model.DeleteLine {
		lineNumbers := matchedLineNumbers(fr.Matches)
		newContent = deleteLines(oldContent, lineNumbers)
	} else {
		re, reErr := buildRegex(search)
		if reErr != nil {
			return nil, errs.Wrap(errs.InvariantViolation, reErr)
		}
		newContent = re.ReplaceAllStringFunc(oldContent, func(matched string) string {
			return substitute(matched, replace)
		})
	}

	if newContent == oldContent {
		return nil, nil
	}
	if writeErr := writeFile(fr.Path, newContent); writeErr != nil {
		return nil, writeErr
	}

	return &FileChange{
		Path: fr.Path,
		Diff: diff.Compute(fr.Path, oldContent, newContent),
	}, nil
}

// buildRegex constructs the regex used by the replace plan, using the
// SAME per-kind rules as the search backend's flag table.
func buildRegex(search model.SearchText) (*regexp.Regexp, error) {
	var pattern string
	switch search.Kind {
	case model.Simple:
		pattern = "(?i)" + regexp.QuoteMeta(search.Text)
	case model.MatchCase:
		pattern = regexp.QuoteMeta(search.Text)
	case model.MatchWholeWord:
		pattern = `(?i)\b` + regexp.QuoteMeta(search.Text) + `\b`
	case model.MatchCaseWholeWord:
		pattern = `\b` + regexp.QuoteMeta(search.Text) + `\b`
	case model.Regex:
		pattern = "(?i)" + search.Text
	default:
		pattern = "(?i)" + regexp.QuoteMeta(search.Text)
	}
	return regexp.Compile(pattern)
}

// substitute produces the replacement text for one matched occurrence.
func substitute(matched string, replace model.ReplaceText) string {
	switch replace.Kind {
	case model.PreserveCase:
		return preserveCase(matched, replace.Text)
	default:
		return replace.Text
	}
}

// preserveCase mirrors the matched text's casing onto the replacement:
// all-uppercase matches uppercase the replacement, a leading-uppercase
// match title-cases it, otherwise it is lowercased.
func preserveCase(matched, replacement string) string {
	if matched == "" || replacement == "" {
		return replacement
	}
	if matched == strings.ToUpper(matched) && matched != strings.ToLower(matched) {
		return strings.ToUpper(replacement)
	}
	firstRune := []rune(matched)[0]
	if unicode.IsUpper(firstRune) {
		r := []rune(replacement)
		return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.ToLower(replacement)
}

// replaceWithinLine runs the substitution only within the target line,
// leaving the rest of the file untouched.
func replaceWithinLine(content string, lineNumber uint32, re *regexp.Regexp, replace model.ReplaceText) string {
	lines, trailingNewline := splitLines(content)
	idx := int(lineNumber) - 1
	if idx < 0 || idx >= len(lines) {
		return content
	}
	lines[idx] = re.ReplaceAllStringFunc(lines[idx], func(matched string) string {
		return substitute(matched, replace)
	})
	return joinLines(lines, trailingNewline)
}

// deleteLines removes the given 1-indexed line numbers, sorted
// descending so earlier indices stay valid as later ones are removed.
func deleteLines(content string, lineNumbers []uint32) string {
	lines, trailingNewline := splitLines(content)

	unique := make(map[uint32]bool, len(lineNumbers))
	for _, ln := range lineNumbers {
		unique[ln] = true
	}
	sorted := make([]uint32, 0, len(unique))
	for ln := range unique {
		sorted = append(sorted, ln)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	for _, ln := range sorted {
		idx := int(ln) - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	return joinLines(lines, trailingNewline)
}

func matchedLineNumbers(matches []model.Match) []uint32 {
	lines := make([]uint32, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m.LineNumber)
	}
	return lines
}

// splitLines splits content into lines, reporting whether the original
// content ended with a trailing newline so joinLines can restore it.
func splitLines(content string) ([]string, bool) {
	trailingNewline := strings.HasSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	if trailingNewline {
		lines = lines[:len(lines)-1]
	}
	return lines, trailingNewline
}

// joinLines reassembles lines with \n, per spec's documented
// simplification that carriage returns are not preserved.
func joinLines(lines []string, trailingNewline bool) string {
	joined := strings.Join(lines, "\n")
	if trailingNewline && len(lines) > 0 {
		joined += "\n"
	}
	return joined
}

func readFile(path string) (string, *errs.ReplaceError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.Wrap(errs.IoError, err)
	}
	return string(data), nil
}

func writeFile(path, content string) *errs.ReplaceError {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errs.Wrap(errs.IoError, err)
	}
	return nil
}
