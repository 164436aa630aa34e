// Package editor is the single surface through which text is mutated.
// It composes a buffer with an undo log, a style range map and a layout
// cache, and every edit runs the same pipeline in a fixed order: apply
// the byte change, shift style entries past the edit, drop layout
// entries from the edited line on, record the change for undo, and
// return the caret position after the edit.
//
// Callers read through Snapshot or the query passthroughs; the mutable
// buffer is never handed out, so the auxiliary structures cannot
// diverge from the text they describe.
package editor
