package core

import "strings"

// Logical key layout on the Store. Every namespace owns four keys derived
// from its normalized page key.
const (
	notesPrefix  = "notes::"
	groupsPrefix = "groups::"
	schemaPrefix = "schemaVersion::"
	undoPrefix   = "undo::"
)

// KeyKind classifies a logical storage key.
type KeyKind string

const (
	KindNotes   KeyKind = "notes"
	KindGroups  KeyKind = "groups"
	KindSchema  KeyKind = "schemaVersion"
	KindUndo    KeyKind = "undo"
	KindUnknown KeyKind = ""
)

// NotesKey returns the storage key holding a namespace's note list.
func NotesKey(namespace string) string { return notesPrefix + namespace }

// GroupsKey returns the storage key holding a namespace's group list.
func GroupsKey(namespace string) string { return groupsPrefix + namespace }

// SchemaKey returns the storage key holding a namespace's schema version marker.
func SchemaKey(namespace string) string { return schemaPrefix + namespace }

// UndoKey returns the storage key holding a namespace's undo snapshot.
func UndoKey(namespace string) string { return undoPrefix + namespace }

// SplitKey breaks a logical storage key into its kind and namespace.
// ok is false for keys outside the cuebook layout.
func SplitKey(key string) (kind KeyKind, namespace string, ok bool) {
	for _, p := range []struct {
		prefix string
		kind   KeyKind
	}{
		{notesPrefix, KindNotes},
		{groupsPrefix, KindGroups},
		{schemaPrefix, KindSchema},
		{undoPrefix, KindUndo},
	} {
		if strings.HasPrefix(key, p.prefix) {
			return p.kind, key[len(p.prefix):], true
		}
	}
	return KindUnknown, "", false
}
