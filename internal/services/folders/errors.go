package folders

import "errors"

// ErrFolderNotFound - folder not found in DB
var ErrFolderNotFound = errors.New("folder not found")

// ErrMissingName is returned when the name field is absent or empty.
var ErrMissingName = errors.New("Missing `name` in request body")

// ErrDuplicateName maps the per-user unique index violation.
var ErrDuplicateName = errors.New("Folder name already exists")

// ErrCreateFoldersRepo is returned when folders repository creation fails.
var ErrCreateFoldersRepo = errors.New("failed to create folders repository")
