package notes

import "errors"

// ErrNoteNotFound - note not found in DB (or owned by somebody else, which
// reads identically on purpose)
var ErrNoteNotFound = errors.New("note not found")

// Validation failures carry the exact message the API reports. The ownership
// variant of the tags error deliberately differs from the format variant only
// in the backticks, mirroring the two distinct rejection points.
var (
	ErrMissingTitle    = errors.New("Missing `title` in request body")
	ErrInvalidID       = errors.New("The `id` is not valid")
	ErrInvalidFolderID = errors.New("The `folderId` is not valid")
	ErrInvalidTagID    = errors.New("The `tags` array contains an invalid `id`")
	ErrInvalidTagRef   = errors.New("The `tags` array contains an invalid id")
)

// errOwnershipCheck marks an infrastructure failure during a reference
// lookup, distinct from a rejected reference.
var errOwnershipCheck = errors.New("ownership check failed")

// ErrCreateNote is returned when note creation fails.
var ErrCreateNote = errors.New("failed to create note")

// ErrUpdateNote is returned when note update fails.
var ErrUpdateNote = errors.New("failed to update note")

// ErrDeleteNote is returned when note deletion fails.
var ErrDeleteNote = errors.New("failed to delete note")

// ErrListNotes is returned when notes listing fails.
var ErrListNotes = errors.New("failed to list notes")

// ErrGetNote is returned when a single-note read fails.
var ErrGetNote = errors.New("failed to get note")

// ErrCreateNotesRepo is returned when notes repository creation fails.
var ErrCreateNotesRepo = errors.New("failed to create notes repository")
