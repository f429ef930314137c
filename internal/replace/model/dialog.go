package model

// DialogAction names what a dialog's confirm/cancel button re-dispatches.
// Carried over from the original implementation's redux action set since
// it is what a dialog button actually wires to.
type DialogAction int

const (
	DialogActionConfirmReplace DialogAction = iota
	DialogActionCancelReplace
)

// Dialog is the sum type of modal dialogs the store can hold. Modeled as
// a capability interface plus concrete structs rather than a tagged enum,
// matching how the teacher expresses config-driven variants.
type Dialog interface {
	Message() string
	Visible() bool
	dialog()
}

// ConfirmEmptyReplaceDialog warns that the replace text is empty before a
// destructive replace_all proceeds.
type ConfirmEmptyReplaceDialog struct {
	Msg         string
	OnConfirm   *DialogAction
	OnCancel    *DialogAction
	ConfirmText string
	CancelText  string
	ShowCancel  bool
	Show        bool
}

func (d ConfirmEmptyReplaceDialog) Message() string { return d.Msg }
func (d ConfirmEmptyReplaceDialog) Visible() bool   { return d.Show }
func (ConfirmEmptyReplaceDialog) dialog()           {}

// ConfirmNonVcsDirectoryDialog warns that project_root is not under
// version control before a destructive replace_all proceeds.
type ConfirmNonVcsDirectoryDialog struct {
	Msg         string
	OnConfirm   *DialogAction
	OnCancel    *DialogAction
	ConfirmText string
	CancelText  string
	ShowCancel  bool
	Show        bool
}

func (d ConfirmNonVcsDirectoryDialog) Message() string { return d.Msg }
func (d ConfirmNonVcsDirectoryDialog) Visible() bool   { return d.Show }
func (ConfirmNonVcsDirectoryDialog) dialog()           {}

// HelpDialog shows the keybinding reference.
type HelpDialog struct {
	Show bool
}

func (d HelpDialog) Message() string { return "" }
func (d HelpDialog) Visible() bool   { return d.Show }
func (HelpDialog) dialog()           {}
