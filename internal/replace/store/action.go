package store

import "github.com/kvit-s/kvit-replace/internal/replace/model"

// Action is the sum type of reducer actions, modeled the same way as
// model.Dialog: an interface plus concrete structs, switched on by type
// in reduce.
type Action interface {
	action()
}

type SetSearchListAction struct{ List model.SearchList }

func (SetSearchListAction) action() {}

type SetSelectedResultAction struct{ Selection model.Selection }

func (SetSelectedResultAction) action() {}

type SetSearchTextAction struct{ Text string }

func (SetSearchTextAction) action() {}

type SetReplaceTextAction struct{ Text string }

func (SetReplaceTextAction) action() {}

type SetSearchTextKindAction struct{ Kind model.SearchKind }

func (SetSearchTextKindAction) action() {}

type SetReplaceTextKindAction struct{ Kind model.ReplaceKind }

func (SetReplaceTextKindAction) action() {}

type SetActiveTabAction struct{ Tab model.Tab }

func (SetActiveTabAction) action() {}

type LoopOverTabsAction struct{}

func (LoopOverTabsAction) action() {}

type BackLoopOverTabsAction struct{}

func (BackLoopOverTabsAction) action() {}

// SetDialogAction sets the active dialog; Dialog == nil dismisses it.
type SetDialogAction struct{ Dialog model.Dialog }

func (SetDialogAction) action() {}

type SetFocusedScreenAction struct{ Screen model.FocusedScreen }

func (SetFocusedScreenAction) action() {}

type RemoveFileFromListAction struct{ Index int }

func (RemoveFileFromListAction) action() {}

type RemoveLineFromFileAction struct{ FileIndex, LineIndex int }

func (RemoveLineFromFileAction) action() {}

type ResetStateAction struct{}

func (ResetStateAction) action() {}

type SetNotificationAction struct{ Notification Notification }

func (SetNotificationAction) action() {}

type SetGlobalLoadingAction struct{ Loading bool }

func (SetGlobalLoadingAction) action() {}

type ChangeModeAction struct{ Mode model.Mode }

func (ChangeModeAction) action() {}

// SetIsLargeFolderAction records the large-folder probe result computed
// at startup by internal/replace/env, gating input debouncing.
type SetIsLargeFolderAction struct{ IsLargeFolder bool }

func (SetIsLargeFolderAction) action() {}
