package tags

import "errors"

// ErrTagNotFound - tag not found in DB
var ErrTagNotFound = errors.New("tag not found")

// ErrMissingName is returned when the name field is absent or empty.
var ErrMissingName = errors.New("Missing `name` in request body")

// ErrDuplicateName maps the per-user unique index violation.
var ErrDuplicateName = errors.New("Tag name already exists")

// ErrCreateTagsRepo is returned when tags repository creation fails.
var ErrCreateTagsRepo = errors.New("failed to create tags repository")
