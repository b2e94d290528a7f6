package notebook

// NotePatch is a partial note update. It is the PATCH /notes/{id} body and the unit the
// client save coordinator accumulates per note.
type NotePatch struct {
	Title    *string          `json:"title,omitempty"`
	Content  Optional[string] `json:"content,omitzero"`
	FolderID Optional[string] `json:"folderId,omitzero"`
}

// IsEmpty reports whether the patch touches no field.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && !p.Content.Present && !p.FolderID.Present
}

// Merge returns p overlaid with newer, last value wins per field.
func (p NotePatch) Merge(newer NotePatch) NotePatch {
	merged := p
	if newer.Title != nil {
		merged.Title = newer.Title
	}
	if newer.Content.Present {
		merged.Content = newer.Content
	}
	if newer.FolderID.Present {
		merged.FolderID = newer.FolderID
	}
	return merged
}

// Fields lists the JSON names of the fields the patch touches.
func (p NotePatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Content.Present {
		fields = append(fields, "content")
	}
	if p.FolderID.Present {
		fields = append(fields, "folderId")
	}
	return fields
}
