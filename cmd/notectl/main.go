package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"nicenote/internal/client"
	"nicenote/internal/client/autosave"
	"nicenote/internal/client/cache"
	models "nicenote/internal/domain/models/notebook"
	"nicenote/internal/service/notebook"
)

func main() {
	cliApp := &cli.App{
		Name:  "notectl",
		Usage: "command line client for the note API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api", Value: "http://localhost:8080", EnvVars: []string{"NICENOTE_API"}, Usage: "API base URL"},
			&cli.StringFlag{Name: "lang", EnvVars: []string{"NICENOTE_LANG"}, Usage: "Accept-Language for error messages"},
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list notes, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "folder"},
					&cli.StringFlag{Name: "tag"},
					&cli.IntFlag{Name: "limit", Value: models.DefaultListLimit},
					&cli.BoolFlag{Name: "all", Usage: "follow cursors to the last page"},
				},
				Action: list,
			},
			{
				Name:      "search",
				Usage:     "full-text search",
				ArgsUsage: "<query>",
				Flags:     []cli.Flag{&cli.IntFlag{Name: "limit"}},
				Action:    search,
			},
			{
				Name:      "edit",
				Usage:     "append stdin lines to a note, saving as you type; 'title: x' lines rename it",
				ArgsUsage: "<note id>",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "debounce", Value: autosave.DefaultDebounce},
				},
				Action: edit,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newClient(c *cli.Context) *client.Client {
	return client.New(c.String("api"), client.WithLanguage(c.String("lang")))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func list(c *cli.Context) error {
	api := newClient(c)
	folder, tag := optional(c.String("folder")), optional(c.String("tag"))
	key := cache.KeyFor(folder, tag)
	store := cache.New(nil)

	q := client.ListQuery{Limit: c.Int("limit"), FolderID: folder, TagID: tag}
	for {
		page, err := api.ListNotes(c.Context, q)
		if err != nil {
			return err
		}
		store.AppendPage(key, page)

		q.Cursor = page.Next()
		if q.Cursor == nil || !c.Bool("all") {
			break
		}
	}

	items, next, _ := store.Pages(key)
	for _, item := range items {
		fmt.Fprintf(c.App.Writer, "%s  %s  %s\n", item.ID, item.UpdatedAt.Local().Format(time.DateTime), item.Title)
	}
	if next != nil {
		fmt.Fprintf(c.App.Writer, "-- more: --all to continue after %s\n", next.ID)
	}
	return nil
}

func search(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("search needs a query")
	}

	hits, err := newClient(c).SearchNotes(c.Context, query, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, hit := range hits {
		fmt.Fprintf(c.App.Writer, "%s  %s\n    %s\n", hit.ID, hit.Title, hit.Snippet)
	}
	return nil
}

type stderrNotifier struct{ w io.Writer }

func (n stderrNotifier) SaveFailed(noteID string, err error) {
	fmt.Fprintf(n.w, "could not save %s, edits kept: %v\n", noteID, err)
}

func edit(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("edit needs a note id")
	}

	api := newClient(c)
	note, err := api.GetNote(c.Context, id)
	if err != nil {
		return err
	}

	store := cache.New(notebook.NewContentAnalyzer().Summary)
	store.PutNote(note)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	coord := autosave.New(api, autosave.Options{
		Debounce: c.Duration("debounce"),
		Logger:   logger,
		Cache:    store,
		Notifier: stderrNotifier{w: os.Stderr},
	})
	coord.OnStatus(func(s autosave.Status) {
		fmt.Fprintf(os.Stderr, "[%s]\n", s)
	})

	content := ""
	if note.Content != nil {
		content = *note.Content
	}

	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		line := scanner.Text()
		if title, ok := strings.CutPrefix(line, "title: "); ok {
			coord.ScheduleSave(id, models.NotePatch{Title: &title})
			continue
		}
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += line
		coord.ScheduleSave(id, models.NotePatch{Content: models.Some(content)})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Context), 10*time.Second)
	defer cancel()
	coord.Close(ctx)

	if final, ok := store.Note(id); ok {
		fmt.Fprintf(c.App.Writer, "%s  %s\n", final.ID, final.Title)
	}
	return nil
}
