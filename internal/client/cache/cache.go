// Package cache holds the client-side copies of note list pages and note details.
package cache

import (
	"slices"
	"sync"
	"time"

	models "nicenote/internal/domain/models/notebook"
)

// ListKey identifies one filtered list view. The zero value is the unfiltered list.
type ListKey struct {
	FolderID string
	TagID    string
}

// KeyFor builds the key for a list filtered by folder and tag; nil means unfiltered
func KeyFor(folderID, tagID *string) ListKey {
	var key ListKey
	if folderID != nil {
		key.FolderID = *folderID
	}
	if tagID != nil {
		key.TagID = *tagID
	}
	return key
}

// Summarizer derives a list summary from note content
type Summarizer func(content string) *string

type listState struct {
	items []models.NoteListItem
	next  *models.ListCursor
}

// Cache is safe for concurrent use
type Cache struct {
	mu        sync.RWMutex
	lists     map[ListKey]*listState
	notes     map[string]*models.Note
	summarize Summarizer
}

// New creates an empty cache. summarize is used to refresh list summaries when a
// patch changes content; nil leaves summaries untouched.
func New(summarize Summarizer) *Cache {
	return &Cache{
		lists:     make(map[ListKey]*listState),
		notes:     make(map[string]*models.Note),
		summarize: summarize,
	}
}

// Pages returns the loaded rows for key and the cursor for the next page.
// loaded is false when nothing was fetched for key yet.
func (c *Cache) Pages(key ListKey) (items []models.NoteListItem, next *models.ListCursor, loaded bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, ok := c.lists[key]
	if !ok {
		return nil, nil, false
	}
	return slices.Clone(state.items), state.next, true
}

// AppendPage adds a fetched page to the list for key. Rows already present are skipped.
func (c *Cache) AppendPage(key ListKey, page *models.NotePage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.list(key)
	for _, item := range page.Data {
		if indexOf(state.items, item.ID) < 0 {
			state.items = append(state.items, item)
		}
	}
	state.next = page.Next()
}

// ResetList forgets the pages loaded for key
func (c *Cache) ResetList(key ListKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, key)
}

// Note returns a copy of the cached detail for id
func (c *Cache) Note(id string) (*models.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	note, ok := c.notes[id]
	if !ok {
		return nil, false
	}
	cp := *note
	return &cp, true
}

// PutNote stores a fetched note detail
func (c *Cache) PutNote(note *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *note
	c.notes[note.ID] = &cp
}

// ApplyPatch applies a pending edit to every cached representation of the note:
// the detail and each list row. A row whose folder no longer matches a folder-filtered
// list is dropped from that list.
func (c *Cache) ApplyPatch(id string, patch models.NotePatch, at time.Time) {
	if patch.IsEmpty() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	refresh := patch.Content.Present && c.summarize != nil
	var summary *string
	if refresh && patch.Content.Value != nil {
		summary = c.summarize(*patch.Content.Value)
	}

	if note, ok := c.notes[id]; ok {
		if patch.Title != nil {
			note.Title = *patch.Title
		}
		if patch.Content.Present {
			note.Content = patch.Content.Value
		}
		if refresh {
			note.Summary = summary
		}
		if patch.FolderID.Present {
			note.FolderID = patch.FolderID.Value
		}
		note.UpdatedAt = at
	}

	for key, state := range c.lists {
		i := indexOf(state.items, id)
		if i < 0 {
			continue
		}
		item := &state.items[i]
		if patch.Title != nil {
			item.Title = *patch.Title
		}
		if refresh {
			item.Summary = summary
		}
		if patch.FolderID.Present {
			item.FolderID = patch.FolderID.Value
			if key.FolderID != "" && (item.FolderID == nil || *item.FolderID != key.FolderID) {
				state.items = slices.Delete(state.items, i, i+1)
				continue
			}
		}
		item.UpdatedAt = at
	}
}

// ApplySaved records the server's view of a saved note. Only the timestamps are taken
// so edits made while the save was in flight stay visible.
func (c *Cache) ApplySaved(saved *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if note, ok := c.notes[saved.ID]; ok {
		note.CreatedAt = saved.CreatedAt
		note.UpdatedAt = saved.UpdatedAt
	}
	for _, state := range c.lists {
		if i := indexOf(state.items, saved.ID); i >= 0 {
			state.items[i].CreatedAt = saved.CreatedAt
			state.items[i].UpdatedAt = saved.UpdatedAt
		}
	}
}

// Remove drops the note from the detail cache and every list. The returned func puts
// it back where it was, for rolling back a failed delete.
func (c *Cache) Remove(id string) (restore func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type removedRow struct {
		key   ListKey
		index int
		item  models.NoteListItem
	}
	var rows []removedRow
	for key, state := range c.lists {
		if i := indexOf(state.items, id); i >= 0 {
			rows = append(rows, removedRow{key: key, index: i, item: state.items[i]})
			state.items = slices.Delete(state.items, i, i+1)
		}
	}
	note, hadNote := c.notes[id]
	delete(c.notes, id)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if hadNote {
			c.notes[id] = note
		}
		for _, row := range rows {
			state, ok := c.lists[row.key]
			if !ok || indexOf(state.items, id) >= 0 {
				continue
			}
			state.items = slices.Insert(state.items, min(row.index, len(state.items)), row.item)
		}
	}
}

// InsertCreated puts a newly created note at the head of the list for key and caches
// its detail
func (c *Cache) InsertCreated(key ListKey, note *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := *note
	c.notes[note.ID] = &cp

	state := c.list(key)
	if indexOf(state.items, note.ID) < 0 {
		state.items = slices.Insert(state.items, 0, note.ListItem())
	}
}

func (c *Cache) list(key ListKey) *listState {
	state, ok := c.lists[key]
	if !ok {
		state = &listState{}
		c.lists[key] = state
	}
	return state
}

func indexOf(items []models.NoteListItem, id string) int {
	return slices.IndexFunc(items, func(item models.NoteListItem) bool { return item.ID == id })
}
