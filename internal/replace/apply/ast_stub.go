//go:build !astgrep

package apply

import (
	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

func replaceAstFile(_ model.FileResult, _ model.ReplaceText, _ Options) (*FileChange, *errs.ReplaceError) {
	return nil, errs.New(errs.MissingDependency, "astgrep replace was requested but this build was compiled without the astgrep tag")
}

func replaceAstLine(_ model.FileResult, _ model.Match, _ model.ReplaceText, _ Options) (*FileChange, *errs.ReplaceError) {
	return nil, errs.New(errs.MissingDependency, "astgrep replace was requested but this build was compiled without the astgrep tag")
}
