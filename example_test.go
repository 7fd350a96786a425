package cuebook_test

import (
	"context"
	"fmt"
	"log"

	cuebook "github.com/cuebook/cuebook"
)

func Example() {
	repo, err := cuebook.New("", cuebook.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"

	if err := repo.AddGroup(ctx, url, "Chorus"); err != nil {
		log.Fatal(err)
	}
	note, err := repo.AddNote(ctx, url, cuebook.Note{
		Text:  "never gonna give you up",
		Time:  "0:43",
		Group: "Chorus",
	})
	if err != nil {
		log.Fatal(err)
	}

	// The playback offset is stripped, so the plain URL sees the note.
	notes, err := repo.Notes(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(notes), notes[0].Group, notes[0].ID == note.ID)
	// Output: 1 Chorus true
}
