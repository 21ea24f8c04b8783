package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"notesync/pkg/client"
	"notesync/pkg/view"
)

// Drives two clients signed in as the same user against a running server.
// Client A mutates; client B only watches its push channel. If the sync
// pipeline works, B's screen follows A's edits without B issuing a request.

type consoleRenderer struct {
	label string
	color *color.Color
}

func (r *consoleRenderer) printf(format string, args ...any) {
	r.color.Printf("[%s] ", r.label)
	fmt.Printf(format+"\n", args...)
}

func (r *consoleRenderer) RenderNotebooks(section view.Section, notebooks []view.Notebook) {
	r.printf("notebooks in %s:", section)
	for _, nb := range notebooks {
		fmt.Printf("    - %s (%d notes)\n", nb.Name, nb.NoteCount)
	}
	if len(notebooks) == 0 {
		fmt.Println("    (no notebooks yet)")
	}
}

func (r *consoleRenderer) RenderNotes(key view.Key, notes []view.Note) {
	r.printf("notes in %s:", key.String())
	for _, n := range notes {
		marker := " "
		if n.IsChecked {
			marker = "x"
		}
		fmt.Printf("    [%s] %s\n", marker, n.Content)
	}
	if len(notes) == 0 {
		fmt.Println("    (no notes yet)")
	}
}

func (r *consoleRenderer) RenderLoading(key view.Key) {
	r.printf("loading %s ...", key.String())
}

func (r *consoleRenderer) RenderLoadError(key view.Key, err error) {
	r.printf("FAILED to load %s: %v", key.String(), err)
}

func (r *consoleRenderer) RenderLockSetup() {
	r.printf("locked section: set a passphrase first")
}

func (r *consoleRenderer) RenderLockPrompt() {
	r.printf("locked section: enter passphrase")
}

func (r *consoleRenderer) RenderMutationError(err error) {
	r.printf("mutation failed: %v", err)
}

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	ctx := context.Background()

	username := fmt.Sprintf("sim-%d", time.Now().UnixNano())
	pin := "4242"

	// Client A registers, client B logs in to the same account.
	apiA := mustClient(baseURL)
	apiB := mustClient(baseURL)

	if _, err := apiA.Register(ctx, username, pin); err != nil {
		log.Fatalf("register: %v", err)
	}
	if _, err := apiB.Login(ctx, username, pin); err != nil {
		log.Fatalf("login: %v", err)
	}
	color.Green("Both clients signed in as %s", username)

	stateA := client.NewState(apiA, &consoleRenderer{label: "A", color: color.New(color.FgCyan)})
	stateB := client.NewState(apiB, &consoleRenderer{label: "B", color: color.New(color.FgYellow)})

	connectPush(ctx, baseURL, apiA, stateA, "A")
	connectPush(ctx, baseURL, apiB, stateB, "B")

	// Both tabs start on the regular section. B stays there for the rest of
	// the run and should see every change A makes.
	stateA.Navigate(view.SectionRegular)
	stateB.Navigate(view.SectionRegular)
	time.Sleep(500 * time.Millisecond)

	color.Green("\n--- A creates notebook \"Groceries\" ---")
	if err := stateA.CreateNotebook("Groceries", view.SectionRegular); err != nil {
		log.Fatalf("create notebook: %v", err)
	}
	time.Sleep(500 * time.Millisecond)

	notebooks, err := apiA.FetchNotebooks(ctx, view.SectionRegular)
	if err != nil || len(notebooks) == 0 {
		log.Fatalf("expected the new notebook to be listed, got %v / %v", notebooks, err)
	}
	groceries := notebooks[0]

	color.Green("\n--- A opens the notebook and adds \"milk\" ---")
	stateA.OpenNotebook(groceries)
	if err := stateA.CreateNote(client.NoteDraft{
		Content:    "milk",
		Section:    view.SectionRegular,
		NotebookId: &groceries.Id,
	}); err != nil {
		log.Fatalf("create note: %v", err)
	}
	time.Sleep(500 * time.Millisecond)

	color.Green("\n--- B opens the same notebook (served by push-updated cache) ---")
	stateB.OpenNotebook(groceries)
	time.Sleep(500 * time.Millisecond)

	color.Green("\n--- A favorites the note, both check the favorites view ---")
	notes, err := apiA.FetchNotes(ctx, view.NotesKey(view.SectionRegular, groceries.Id))
	if err != nil || len(notes) == 0 {
		log.Fatalf("expected one note, got %v / %v", notes, err)
	}
	if err := stateA.ToggleFavorite(notes[0].Id); err != nil {
		log.Fatalf("toggle favorite: %v", err)
	}
	time.Sleep(500 * time.Millisecond)
	stateA.Navigate(view.SectionFavorites)
	stateB.Navigate(view.SectionFavorites)
	time.Sleep(500 * time.Millisecond)

	color.Green("\nSimulation finished")
}

func mustClient(baseURL string) *client.APIClient {
	api, err := client.NewAPIClient(baseURL)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	return api
}

func connectPush(ctx context.Context, baseURL string, api *client.APIClient, state *client.State, label string) {
	ticket, err := api.PushTicket(ctx)
	if err != nil {
		log.Fatalf("push ticket for %s: %v", label, err)
	}
	listener := client.NewPushListener(state.ApplyPush, func(err error) {
		color.Red("[%s] push error: %v", label, err)
	})
	if err := listener.Connect(ctx, baseURL, ticket, nil); err != nil {
		log.Fatalf("push connect for %s: %v", label, err)
	}
}
