// Note is the central entity of the domain.
package core

// SentinelGroup is the reserved group name for notes that belong to no
// user-created group. It is always a valid reference even when absent
// from a namespace's group list.
const SentinelGroup = "Ungrouped"

// CurrentSchemaVersion is the on-store record shape this build reads and writes.
const CurrentSchemaVersion = 3

// Note is a single timestamped annotation attached to a page.
type Note struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Time    string   `json:"time,omitempty" yaml:"time,omitempty"` // "MM:SS" or "HH:MM:SS"; empty means untimed
	Tags    []string `json:"tags" yaml:"tags"`
	Group   string   `json:"group" yaml:"group"`
	Created int64    `json:"created" yaml:"created"` // epoch millis
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	out := n
	if n.Tags != nil {
		out.Tags = append([]string(nil), n.Tags...)
	}
	return out
}

// Namespace is the note/group dataset scoped to one normalized page key.
// Both slices are order-significant: Groups drives group render order,
// and the relative order of notes sharing a Group value inside Notes is
// the display order within that group.
type Namespace struct {
	Key           string   `json:"-" yaml:"-"`
	Notes         []Note   `json:"notes" yaml:"notes"`
	Groups        []string `json:"groups" yaml:"groups"`
	SchemaVersion int      `json:"schemaVersion" yaml:"schemaVersion"`
}

// Clone returns a deep copy of the namespace.
func (ns Namespace) Clone() Namespace {
	out := Namespace{
		Key:           ns.Key,
		SchemaVersion: ns.SchemaVersion,
	}
	if ns.Notes != nil {
		out.Notes = make([]Note, 0, len(ns.Notes))
		for _, n := range ns.Notes {
			out.Notes = append(out.Notes, n.Clone())
		}
	}
	if ns.Groups != nil {
		out.Groups = append([]string(nil), ns.Groups...)
	}
	return out
}

// EventType represents the type of change in a namespace.
type EventType string

const (
	EventNoteAdded    EventType = "NOTE_ADDED"
	EventNoteUpdated  EventType = "NOTE_UPDATED"
	EventNoteDeleted  EventType = "NOTE_DELETED"
	EventNoteMoved    EventType = "NOTE_MOVED"
	EventGroupAdded   EventType = "GROUP_ADDED"
	EventGroupRenamed EventType = "GROUP_RENAMED"
	EventGroupDeleted EventType = "GROUP_DELETED"
	EventGroupMoved   EventType = "GROUP_MOVED"
	EventRestored     EventType = "RESTORED"
	// EventNamespaceChanged signals an out-of-process change to a
	// namespace's stored data, observed by a watching store.
	EventNamespaceChanged EventType = "NAMESPACE_CHANGED"
)

// Event represents a committed change in a namespace.
type Event struct {
	Type      EventType
	Key       string // normalized namespace key
	NoteID    string
	Group     string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	if e.NoteID != "" {
		return string(e.Type) + " " + e.Key + " " + e.NoteID
	}
	if e.Group != "" {
		return string(e.Type) + " " + e.Key + " " + e.Group
	}
	return string(e.Type) + " " + e.Key
}
