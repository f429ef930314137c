package search

import (
	"context"

	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
)

// Options configures a Search call.
type Options struct {
	RegexBinary  string
	ContextLines int
	AstBinary    string
	ReplaceText  string // threaded through to the AST backend for -r
}

// Search runs the backend selected by query.Kind and returns its
// normalized SearchList. AstGrep routes to searchAst, which is only
// compiled in when the astgrep build tag is set; without it, AstGrep
// queries fail as a missing dependency rather than silently degrading.
func Search(ctx context.Context, query model.SearchText, root string, opts Options) (model.SearchList, *errs.ReplaceError) {
	if query.Kind == model.AstGrepSearch {
		return searchAst(ctx, query, root, opts)
	}
	return SearchRegex(ctx, opts.RegexBinary, query, root, opts.ContextLines)
}
