// Package review serializes match records to the human-editable CSV that
// bridges the two pipeline halves.
//
// The review file is the only durable interchange artifact: analysis writes
// it, a human deletes unwanted rows in a spreadsheet editor, and the edit
// command reads it back. Parsing is all-or-nothing because the file is
// assumed approved; best-effort recovery could silently drop an edit.
package review
