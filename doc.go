// Package cuebook is the composition root for the cuebook library.
//
// It connects the core business logic (note/group repository, schema
// migration, undo) with the storage adapters (filesystem, Redis, memory)
// using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Cuebook keeps timestamped notes attached to video pages, organized into
// named, user-ordered groups, and persists them in a pluggable key-value
// store. Two URLs that differ only by playback decoration ("&t=42s")
// resolve to the same note collection. The core is storage-agnostic: the
// default adapter writes one JSON file per key, but anything satisfying
// core.Store works, including a remote Redis instance shared between
// machines.
//
// Features:
//
//   - **Ordered collections**: note and group order is user-controlled and
//     survives round-trips; drag-and-drop moves never lose or duplicate a note.
//   - **Schema migration**: legacy record shapes upgrade transparently on load.
//   - **Single-step undo**: destructive operations snapshot the note list first.
//   - **Pluggable storage**: filesystem (atomic writes, fsnotify watching),
//     Redis, or in-memory via `core.Store`.
//   - **Events**: subscribe to committed changes for reactive UIs.
//
// Usage:
//
//	repo, err := cuebook.New("./data", cuebook.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	note, err := repo.AddNote(ctx, videoURL, cuebook.Note{
//		Text: "key insight here",
//		Time: "12:45",
//	})
package cuebook
