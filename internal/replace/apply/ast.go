//go:build astgrep

package apply

import (
	"os"
	"sort"

	"github.com/kvit-s/kvit-replace/internal/replace/diff"
	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// replaceAstFile splices every match's precomputed replacement into the
// file by byte range, applied in reverse offset order so earlier ranges
// stay valid as later ones are spliced in.
func replaceAstFile(fr model.FileResult, replace model.ReplaceText, _ Options) (*FileChange, *errs.ReplaceError) {
	data, err := os.ReadFile(fr.Path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, err)
	}
	oldContent := string(data)

	matches := make([]model.Match, len(fr.Matches))
	copy(matches, fr.Matches)
	sort.Slice(matches, func(i, j int) bool { return matches[i].AbsoluteOffset > matches[j].AbsoluteOffset })

	newContent := oldContent
	for _, m := range matches {
		newContent = spliceReplacement(newContent, m, replace)
	}

	if newContent == oldContent {
		return nil, nil
	}
	if err := os.WriteFile(fr.Path, []byte(newContent), 0644); err != nil {
		return nil, errs.Wrap(errs.IoError, err)
	}

	return &FileChange{
		Path: fr.Path,
		Diff: diff.Compute(fr.Path, oldContent, newContent),
	}, nil
}

// replaceAstLine splices a single match's precomputed replacement.
func replaceAstLine(fr model.FileResult, match model.Match, replace model.ReplaceText, _ Options) (*FileChange, *errs.ReplaceError) {
	data, err := os.ReadFile(fr.Path)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, err)
	}
	oldContent := string(data)

	newContent := spliceReplacement(oldContent, match, replace)
	if newContent == oldContent {
		return nil, nil
	}
	if err := os.WriteFile(fr.Path, []byte(newContent), 0644); err != nil {
		return nil, errs.Wrap(errs.IoError, err)
	}

	return &FileChange{
		Path: fr.Path,
		Diff: diff.Compute(fr.Path, oldContent, newContent),
	}, nil
}

func spliceReplacement(content string, m model.Match, replace model.ReplaceText) string {
	if m.ByteEnd == nil {
		return content
	}
	start := int(m.AbsoluteOffset)
	end := int(*m.ByteEnd)
	if start < 0 || end > len(content) || start > end {
		return content
	}

	replacement := replace.Text
	if m.Replacement != nil {
		replacement = *m.Replacement
	}

	return content[:start] + replacement + content[end:]
}
