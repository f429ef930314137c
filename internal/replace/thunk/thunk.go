// Package thunk implements the asynchronous effect handlers that bridge
// the pure reducer to external search/replace backends: each one reads
// a state snapshot, performs I/O, and dispatches actions back through
// the domain queue.
package thunk

import (
	"context"
	"fmt"

	"github.com/kvit-s/kvit-replace/internal/replace/apply"
	"github.com/kvit-s/kvit-replace/internal/replace/bus"
	"github.com/kvit-s/kvit-replace/internal/replace/env"
	"github.com/kvit-s/kvit-replace/internal/replace/errs"
	"github.com/kvit-s/kvit-replace/internal/replace/model"
	"github.com/kvit-s/kvit-replace/internal/replace/search"
	"github.com/kvit-s/kvit-replace/internal/replace/store"
)

// Thunk is an async operation with read access to state (via the Store
// it closes over) and write access via dispatching onto the domain
// queue.
type Thunk func(ctx context.Context, b *bus.Bus) error

func notifyError(b *bus.Bus, err *errs.ReplaceError) {
	b.PushDomain(store.SetNotificationAction{Notification: store.Notification{
		Message: errs.Format(err),
		Show:    true,
		Kind:    store.NotificationError,
	}})
}

func notifyInfo(b *bus.Bus, message string) {
	b.PushDomain(store.SetNotificationAction{Notification: store.Notification{
		Message: message,
		Show:    true,
		Kind:    store.NotificationInfo,
	}})
}

// SearchOptions configures the backend invoked by ProcessSearch.
type SearchOptions struct {
	RegexBinary  string
	ContextLines int
	AstBinary    string
}

// ProcessSearch is idempotent in the search text: it clears the prior
// result list before invoking the backend. A blank search text is a
// no-op.
func ProcessSearch(st *store.Store, opts SearchOptions) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		state := st.Select()
		if state.SearchText.Text == "" {
			return nil
		}

		b.PushDomain(store.SetSearchListAction{List: model.SearchList{}})
		b.PushDomain(store.SetGlobalLoadingAction{Loading: true})

		list, err := search.Search(ctx, state.SearchText, state.ProjectRoot, search.Options{
			RegexBinary:  opts.RegexBinary,
			ContextLines: opts.ContextLines,
			AstBinary:    opts.AstBinary,
		})

		b.PushDomain(store.SetGlobalLoadingAction{Loading: false})
		if err != nil {
			notifyError(b, err)
			return err
		}
		b.PushDomain(store.SetSearchListAction{List: list})
		return nil
	}
}

// ProcessReplace implements the precondition ladder of spec.md §4.C:
// empty search text aborts with a notification; empty replace text or a
// non-VCS root open a confirmation dialog unless force is set; a
// successful replace_all resets state and emits an info notification.
func ProcessReplace(st *store.Store, force bool, opts apply.Options) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		state := st.Select()

		if state.SearchText.Text == "" {
			notifyError(b, errs.New(errs.PreconditionFailure, "search text is empty"))
			return nil
		}

		if !force && state.ReplaceText.Text == "" {
			confirm := model.DialogActionConfirmReplace
			b.PushDomain(store.SetDialogAction{Dialog: model.ConfirmEmptyReplaceDialog{
				Msg:         "Replace text is empty, so matched text will be removed. Continue?",
				OnConfirm:   &confirm,
				ConfirmText: "Replace",
				CancelText:  "Cancel",
				ShowCancel:  true,
				Show:        true,
			}})
			return nil
		}

		if !force && !env.IsVCSRepository(state.ProjectRoot) {
			confirm := model.DialogActionConfirmReplace
			b.PushDomain(store.SetDialogAction{Dialog: model.ConfirmNonVcsDirectoryDialog{
				Msg:         "This directory is not under version control. Changes cannot be easily undone. Continue?",
				OnConfirm:   &confirm,
				ConfirmText: "Replace",
				CancelText:  "Cancel",
				ShowCancel:  true,
				Show:        true,
			}})
			return nil
		}

		result, err := apply.ReplaceAll(state.SearchResult, state.SearchText, state.ReplaceText, opts)
		if err != nil {
			notifyError(b, err)
			return err
		}

		b.PushDomain(store.ResetStateAction{})
		b.PushUI(ResetHint{})
		notifyInfo(b, replaceSummary(result))
		return nil
	}
}

// ProcessSingleFileReplace replaces every match in one FileResult,
// skipping the empty-replace/non-VCS gates since the scope is already
// explicit, then removes that file from the result list.
func ProcessSingleFileReplace(st *store.Store, fileIndex int, opts apply.Options) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		state := st.Select()
		if fileIndex < 0 || fileIndex >= len(state.SearchResult.List) {
			return errs.Newf(errs.InvariantViolation, "file index %d out of range", fileIndex)
		}
		fr := state.SearchResult.List[fileIndex]

		result, err := apply.ReplaceFile(fr, state.SearchText, state.ReplaceText, opts)
		if err != nil {
			notifyError(b, err)
			return err
		}

		b.PushDomain(store.RemoveFileFromListAction{Index: fileIndex})
		notifyInfo(b, replaceSummary(result))
		return nil
	}
}

// ProcessLineReplace replaces one match within one FileResult, then
// removes that match (and the file too, if it was the file's last
// match) from the result list.
func ProcessLineReplace(st *store.Store, fileIndex, lineIndex int, opts apply.Options) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		state := st.Select()
		if fileIndex < 0 || fileIndex >= len(state.SearchResult.List) {
			return errs.Newf(errs.InvariantViolation, "file index %d out of range", fileIndex)
		}
		fr := state.SearchResult.List[fileIndex]

		result, err := apply.ReplaceLine(fr, lineIndex, state.SearchText, state.ReplaceText, opts)
		if err != nil {
			notifyError(b, err)
			return err
		}

		b.PushDomain(store.RemoveLineFromFileAction{FileIndex: fileIndex, LineIndex: lineIndex})
		notifyInfo(b, replaceSummary(result))
		return nil
	}
}

// RemoveFileFromList dispatches removal of the file at index; the
// reducer itself rebinds the selection.
func RemoveFileFromList(index int) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		b.PushDomain(store.RemoveFileFromListAction{Index: index})
		return nil
	}
}

// RemoveLineFromFile dispatches removal of one match.
func RemoveLineFromFile(fileIndex, lineIndex int) Thunk {
	return func(ctx context.Context, b *bus.Bus) error {
		b.PushDomain(store.RemoveLineFromFileAction{FileIndex: fileIndex, LineIndex: lineIndex})
		return nil
	}
}

// ResetHint is the UI-channel message pushed after a full replace_all.
// The TUI drains and discards it; its panes re-render from the reset
// store.
type ResetHint struct{}

func replaceSummary(result apply.Result) string {
	if len(result.FilesChanged) == 0 {
		return "No files changed."
	}
	if len(result.FilesChanged) == 1 {
		return "Replaced matches in 1 file."
	}
	return fmt.Sprintf("Replaced matches in %d files.", len(result.FilesChanged))
}
