package core

import (
	"encoding/json"
)

// Migrate upgrades raw stored payloads written at storedVersion into a
// namespace of the current shape. It runs once per load, before any
// invariant repair.
//
// Each version step is a pure, total function from one record shape to the
// next, and re-applying Migrate to an already-current payload is a no-op.
// Payloads that cannot be interpreted degrade to a minimal valid empty
// namespace (degraded=true) instead of failing the load, so one corrupt
// record never blocks unrelated namespaces.
//
// Version history:
//
//	v0: bare array mixing plain strings and {text, time} objects, no ids
//	v1: note objects with a single "category" string, no tags
//	v2: "group" field and tags list
//	v3: current; created millis, deduplicated tags and groups
func Migrate(rawNotes, rawGroups []byte, storedVersion int) (Namespace, bool) {
	ns := Namespace{
		Notes:         []Note{},
		Groups:        []string{},
		SchemaVersion: CurrentSchemaVersion,
	}

	records, ok := decodeNoteRecords(rawNotes)
	if !ok {
		return ns, true
	}
	groups, ok := decodeGroupList(rawGroups)
	if !ok {
		return ns, true
	}

	if storedVersion < 1 {
		records = liftLegacyEntries(records)
	}
	if storedVersion < 2 {
		records = renameCategoryField(records)
	}

	for _, rec := range records {
		if note, ok := noteFromRecord(rec); ok {
			ns.Notes = append(ns.Notes, note)
		}
	}
	ns.Groups = dedupeStrings(groups)
	return ns, false
}

// decodeNoteRecords parses the raw note payload into generic records.
// A missing payload is an empty namespace; a present but uninterpretable
// one reports ok=false.
func decodeNoteRecords(raw []byte) ([]any, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func decodeGroupList(raw []byte) ([]string, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	groups := make([]string, 0, len(entries))
	for _, e := range entries {
		if s, ok := e.(string); ok && s != "" {
			groups = append(groups, s)
		}
	}
	return groups, true
}

// liftLegacyEntries converts v0 entries to objects: plain strings become
// {text: s}, anything else passes through.
func liftLegacyEntries(records []any) []any {
	out := make([]any, 0, len(records))
	for _, rec := range records {
		if s, ok := rec.(string); ok {
			out = append(out, map[string]any{"text": s})
			continue
		}
		out = append(out, rec)
	}
	return out
}

// renameCategoryField moves the v1 "category" string into "group" when no
// group is present, and normalizes a missing tags field to an empty list.
func renameCategoryField(records []any) []any {
	out := make([]any, 0, len(records))
	for _, rec := range records {
		obj, ok := rec.(map[string]any)
		if !ok {
			out = append(out, rec)
			continue
		}
		if _, has := obj["group"]; !has {
			if cat, ok := obj["category"].(string); ok && cat != "" {
				obj["group"] = cat
			}
		}
		delete(obj, "category")
		if _, has := obj["tags"]; !has {
			obj["tags"] = []any{}
		}
		out = append(out, obj)
	}
	return out
}

// noteFromRecord coerces a generic record into a Note. Records without
// usable text are skipped rather than failing the namespace.
func noteFromRecord(rec any) (Note, bool) {
	obj, ok := rec.(map[string]any)
	if !ok {
		return Note{}, false
	}
	text, _ := obj["text"].(string)
	if text == "" {
		return Note{}, false
	}

	note := Note{
		Text:  text,
		Tags:  []string{},
		Group: SentinelGroup,
	}
	if id, ok := obj["id"].(string); ok {
		note.ID = id
	}
	if ts, ok := obj["time"].(string); ok && ValidTime(ts) {
		note.Time = ts
	}
	if group, ok := obj["group"].(string); ok && group != "" {
		note.Group = group
	}
	if tags, ok := obj["tags"].([]any); ok {
		raw := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok && s != "" {
				raw = append(raw, s)
			}
		}
		note.Tags = dedupeStrings(raw)
	}
	switch created := obj["created"].(type) {
	case float64:
		note.Created = int64(created)
	case json.Number:
		if v, err := created.Int64(); err == nil {
			note.Created = v
		}
	}
	return note, true
}

// dedupeStrings drops duplicates preserving first occurrence.
func dedupeStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
