package autosave

// Status is the save indicator shown to the user. It is global across all notes.
type Status int

const (
	StatusIdle Status = iota
	StatusUnsaved
	StatusSaving
	StatusSaved
)

func (s Status) String() string {
	switch s {
	case StatusUnsaved:
		return "unsaved"
	case StatusSaving:
		return "saving"
	case StatusSaved:
		return "saved"
	default:
		return "idle"
	}
}
