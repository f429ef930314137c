//go:build astgrep

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"

	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// astByteOffset is the {"start", "end"} byte-range wrapper ast-grep
// emits, grounded on original_source/src/astgrep.rs's ByteOffset.
type astByteOffset struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type astPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astRange struct {
	ByteOffset astByteOffset `json:"byteOffset"`
	Start      astPosition   `json:"start"`
	End        astPosition   `json:"end"`
}

type astReplacementOffsets struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type astRecord struct {
	Text                string                 `json:"text"`
	Range               astRange               `json:"range"`
	File                string                 `json:"file"`
	Lines               string                 `json:"lines"`
	Replacement         *string                `json:"replacement"`
	ReplacementOffsets  *astReplacementOffsets `json:"replacementOffsets"`
}

// searchAst is the astgrep-build-tag-enabled implementation of the
// Search facade's AstGrep route.
func searchAst(ctx context.Context, query model.SearchText, root string, opts Options) (model.SearchList, *errs.ReplaceError) {
	return SearchAst(ctx, opts.AstBinary, query, opts.ReplaceText, root)
}

// SearchAst spawns the syntactic search engine and parses its JSON-array
// output into a SearchList, filling context_before/context_after by
// reading each matched file directly (ast-grep's own output carries no
// surrounding context).
func SearchAst(ctx context.Context, binary string, query model.SearchText, replaceText string, root string) (model.SearchList, *errs.ReplaceError) {
	if query.Text == "" {
		return model.SearchList{}, nil
	}

	args := []string{"run", "-p", query.Text}
	if replaceText != "" {
		args = append(args, "-r", replaceText)
	}
	args = append(args, "--json=compact", root)

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return model.SearchList{}, errs.Wrap(errs.SubprocessFailure, err)
		}
	}

	var records []astRecord
	if err := json.Unmarshal(stdout.Bytes(), &records); err != nil {
		return model.SearchList{}, errs.Wrap(errs.ParseError, err)
	}

	var list []model.FileResult
	pathToIndex := make(map[string]int)
	fileLines := make(map[string][]string)

	for _, rec := range records {
		idx, ok := pathToIndex[rec.File]
		if !ok {
			idx = len(list)
			pathToIndex[rec.File] = idx
			list = append(list, model.FileResult{Index: uint32(idx), Path: rec.File})
		}

		lines, ok := fileLines[rec.File]
		if !ok {
			lines = readFileLines(rec.File)
			fileLines[rec.File] = lines
		}

		lineNumber := uint32(rec.Range.Start.Line + 1)
		contextBefore := surroundingLines(lines, rec.Range.Start.Line, -3, 0)
		contextAfter := surroundingLines(lines, rec.Range.End.Line, 1, 3)

		sub := model.SubMatch{
			Start:     rec.Range.Start.Column,
			End:       rec.Range.End.Column,
			LineStart: uint32(rec.Range.Start.Line + 1),
			LineEnd:   uint32(rec.Range.End.Line + 1),
		}

		byteEnd := uint64(rec.Range.ByteOffset.End)
		match := model.Match{
			LineNumber:     lineNumber,
			Lines:          rec.Lines,
			ContextBefore:  contextBefore,
			ContextAfter:   contextAfter,
			AbsoluteOffset: uint64(rec.Range.ByteOffset.Start),
			SubMatches:     []model.SubMatch{sub},
			Replacement:    rec.Replacement,
			ByteEnd:        &byteEnd,
		}

		list[idx].Matches = append(list[idx].Matches, match)
		list[idx].TotalMatches++
	}

	for i := range list {
		model.SortMatches(list[i].Matches)
	}

	return model.SearchList{List: list}, nil
}

// readFileLines reads a file's full contents for context extraction. The
// adapter does not retain this beyond the call, per spec's requirement
// that backends not hold file contents past context collection.
func readFileLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(string(data), "\n")
}

func surroundingLines(lines []string, around int, from, to int) []string {
	var out []string
	for offset := from; offset <= to; offset++ {
		if offset == 0 {
			continue
		}
		i := around + offset
		if i < 0 || i >= len(lines) {
			continue
		}
		out = append(out, lines[i])
	}
	return out
}
