// Package search adapts external search engines (a regex line engine and
// an optional syntactic AST engine) into the normalized Match Model.
package search

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"

	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// rgText is the {"text": "..."} wrapper ripgrep uses for path/lines
// fields, grounded on original_source/src/ripgrep.rs's RipgrepPath/
// RipgrepLines shapes.
type rgText struct {
	Text string `json:"text"`
}

type rgSubmatch struct {
	Match rgText `json:"match"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type rgElapsedTotal struct {
	Nanos uint64 `json:"nanos"`
}

type rgStats struct {
	MatchedLines     uint64 `json:"matched_lines"`
	Matches          uint64 `json:"matches"`
	Searches         uint64 `json:"searches"`
	SearchesWithMatch uint64 `json:"searches_with_match"`
}

type rgData struct {
	Path           *rgText          `json:"path"`
	Lines          *rgText          `json:"lines"`
	LineNumber     *uint32          `json:"line_number"`
	AbsoluteOffset *uint64          `json:"absolute_offset"`
	Submatches     []rgSubmatch     `json:"submatches"`
	ElapsedTotal   *rgElapsedTotal  `json:"elapsed_total"`
	Stats          *rgStats         `json:"stats"`
}

type rgRecord struct {
	Type string  `json:"type"`
	Data *rgData `json:"data"`
}

// buildArgs constructs the regex engine's argument list for a given
// query, per spec's per-kind flag table.
func buildArgs(query model.SearchText, contextLines int, root string) []string {
	args := []string{"--json", "-C", strconv.Itoa(contextLines)}
	switch query.Kind {
	case model.Simple:
		args = append(args, "-i", "-F", query.Text)
	case model.MatchCase:
		args = append(args, "-s", query.Text)
	case model.MatchWholeWord:
		args = append(args, "-w", "-i", query.Text)
	case model.MatchCaseWholeWord:
		args = append(args, "-w", "-s", query.Text)
	case model.Regex:
		args = append(args, query.Text)
	default:
		args = append(args, "-i", "-F", query.Text)
	}
	return append(args, root)
}

// SearchRegex spawns the regex line engine and parses its streaming JSON
// output into a SearchList, per spec's rules 1-5.
func SearchRegex(ctx context.Context, binary string, query model.SearchText, root string, contextLines int) (model.SearchList, *errs.ReplaceError) {
	if query.Text == "" {
		return model.SearchList{}, nil
	}

	args := buildArgs(query, contextLines, root)
	cmd := exec.CommandContext(ctx, binary, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	runErr := cmd.Run()
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			return model.SearchList{}, errs.Wrap(errs.SubprocessFailure, runErr)
		}
		// Non-zero exit with no matches is a valid empty result, per spec.
	}

	return parseRegexOutput(stdout.Bytes())
}

func parseRegexOutput(output []byte) (model.SearchList, *errs.ReplaceError) {
	var (
		list           []model.FileResult
		pathToIndex    = make(map[string]int)
		contextBefore  []string
		curFileIdx     = -1
		curMatchIdx    = -1
		afterCount     = 0
		metadata       model.Metadata
	)

	resetFile := func() {
		contextBefore = nil
		curFileIdx = -1
		curMatchIdx = -1
		afterCount = 0
	}

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec rgRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// ParseError: skip this record, continue with the rest.
			continue
		}

		switch rec.Type {
		case "begin":
			resetFile()

		case "match":
			if rec.Data == nil || rec.Data.Path == nil {
				continue
			}
			path := rec.Data.Path.Text
			idx, ok := pathToIndex[path]
			if !ok {
				idx = len(list)
				pathToIndex[path] = idx
				list = append(list, model.FileResult{Index: uint32(idx), Path: path})
			}

			var lineNumber uint32
			if rec.Data.LineNumber != nil {
				lineNumber = *rec.Data.LineNumber
			}
			var absOffset uint64
			if rec.Data.AbsoluteOffset != nil {
				absOffset = *rec.Data.AbsoluteOffset
			}
			var lines string
			if rec.Data.Lines != nil {
				lines = rec.Data.Lines.Text
			}

			subs := make([]model.SubMatch, 0, len(rec.Data.Submatches))
			for _, sm := range rec.Data.Submatches {
				subs = append(subs, model.SubMatch{
					Start:     sm.Start,
					End:       sm.End,
					LineStart: lineNumber,
					LineEnd:   lineNumber,
				})
			}

			match := model.Match{
				LineNumber:     lineNumber,
				Lines:          lines,
				ContextBefore:  contextBefore,
				AbsoluteOffset: absOffset,
				SubMatches:     subs,
			}
			contextBefore = nil

			list[idx].Matches = append(list[idx].Matches, match)
			list[idx].TotalMatches += uint32(len(subs))

			curFileIdx = idx
			curMatchIdx = len(list[idx].Matches) - 1
			afterCount = 0

		case "context":
			if rec.Data == nil || rec.Data.Lines == nil {
				continue
			}
			text := rec.Data.Lines.Text
			if curFileIdx >= 0 && curMatchIdx >= 0 && afterCount < 3 {
				list[curFileIdx].Matches[curMatchIdx].ContextAfter = append(
					list[curFileIdx].Matches[curMatchIdx].ContextAfter, text)
				afterCount++
			} else {
				contextBefore = append(contextBefore, text)
				if len(contextBefore) > 3 {
					contextBefore = contextBefore[len(contextBefore)-3:]
				}
			}

		case "end":
			resetFile()

		case "summary":
			if rec.Data == nil {
				continue
			}
			if rec.Data.ElapsedTotal != nil {
				metadata.ElapsedNS = rec.Data.ElapsedTotal.Nanos
			}
			if rec.Data.Stats != nil {
				metadata.MatchedLines = rec.Data.Stats.MatchedLines
				metadata.Matches = rec.Data.Stats.Matches
				metadata.Searches = rec.Data.Stats.Searches
				metadata.SearchesWithMatch = rec.Data.Stats.SearchesWithMatch
			}
		}
	}

	for i := range list {
		model.SortMatches(list[i].Matches)
	}

	return model.SearchList{List: list, Metadata: metadata}, nil
}
