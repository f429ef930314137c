//go:build !astgrep

package search

import (
	"context"

	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// searchAst is the default build's AstGrep route: the feature is
// compiled out entirely unless built with -tags astgrep.
func searchAst(_ context.Context, _ model.SearchText, _ string, _ Options) (model.SearchList, *errs.ReplaceError) {
	return model.SearchList{}, errs.New(errs.MissingDependency, "astgrep search was requested but this build was compiled without the astgrep tag")
}
