package notes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"noteful/internal/services/tags"
	"noteful/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles notes business logic: request validation, ownership
// validation of cross-entity references, and scoped persistence calls.
type Service struct {
	repo    Repository
	folders FolderResolver
	tags    TagResolver
	log     *slog.Logger
}

// NewService creates a new notes service
func NewService(repo Repository, folders FolderResolver, tagResolver TagResolver, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		folders: folders,
		tags:    tagResolver,
		log:     log,
	}
}

// parseFolderID turns the wire form into an optional ObjectID. The empty
// string means "no folder" and is dropped rather than rejected.
func parseFolderID(raw string) (*bson.ObjectID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := bson.ObjectIDFromHex(raw)
	if err != nil {
		return nil, ErrInvalidFolderID
	}
	return &id, nil
}

// parseTagIDs validates every element's format; a single bad element fails
// the whole request.
func parseTagIDs(raw []string) ([]bson.ObjectID, error) {
	ids := make([]bson.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := bson.ObjectIDFromHex(s)
		if err != nil {
			return nil, ErrInvalidTagID
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// checkFolderOwnership rejects a folder reference unless it exists and belongs
// to the user. Both cases read as the same invalid-reference error so another
// user's folder ids are indistinguishable from garbage.
func (s *Service) checkFolderOwnership(ctx context.Context, userID bson.ObjectID, folderID *bson.ObjectID) error {
	if folderID == nil {
		return nil
	}
	owned, err := s.folders.OwnedFolderExists(ctx, userID, *folderID)
	if err != nil {
		s.log.Error("folder ownership check failed", "error", err, "user_id", userID.Hex())
		return errOwnershipCheck
	}
	if !owned {
		return ErrInvalidFolderID
	}
	return nil
}

// checkTagOwnership verifies that every requested tag id resolves to a tag
// owned by the user. No partial application: one bad id fails the request.
func (s *Service) checkTagOwnership(ctx context.Context, userID bson.ObjectID, tagIDs []bson.ObjectID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	owned, err := s.tags.FindOwned(ctx, userID, tagIDs)
	if err != nil {
		s.log.Error("tag ownership check failed", "error", err, "user_id", userID.Hex())
		return errOwnershipCheck
	}
	ownedSet := make(map[bson.ObjectID]struct{}, len(owned))
	for _, t := range owned {
		ownedSet[t.ID] = struct{}{}
	}
	for _, id := range tagIDs {
		if _, ok := ownedSet[id]; !ok {
			return ErrInvalidTagRef
		}
	}
	return nil
}

// populate resolves each note's tag ids to full tag objects in one batch.
// A dangling id (tag deleted concurrently) is silently skipped.
func (s *Service) populate(ctx context.Context, userID bson.ObjectID, notesList []*Note) ([]*NoteView, error) {
	idSet := make(map[bson.ObjectID]struct{})
	for _, n := range notesList {
		for _, id := range n.TagIDs {
			idSet[id] = struct{}{}
		}
	}

	byID := make(map[bson.ObjectID]*tags.Tag, len(idSet))
	if len(idSet) > 0 {
		ids := make([]bson.ObjectID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		found, err := s.tags.FindOwned(ctx, userID, ids)
		if err != nil {
			return nil, err
		}
		for _, t := range found {
			byID[t.ID] = t
		}
	}

	views := make([]*NoteView, 0, len(notesList))
	for _, n := range notesList {
		resolved := make([]*tags.Tag, 0, len(n.TagIDs))
		for _, id := range n.TagIDs {
			if t, ok := byID[id]; ok {
				resolved = append(resolved, t)
			}
		}
		views = append(views, &NoteView{Note: *n, Tags: resolved})
	}
	return views, nil
}

// Create validates the request, confirms ownership of every referenced folder
// and tag, and persists the note. All ownership checks complete before the
// insert; ownership is not re-checked afterwards, so a reference deleted
// concurrently by the same user can slip in (accepted race).
func (s *Service) Create(ctx context.Context, userID bson.ObjectID, req CreateNoteRequest) (*NoteView, error) {
	title := sanitize.Clean(req.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	folderID, err := parseFolderID(req.FolderID)
	if err != nil {
		return nil, err
	}

	tagIDs, err := parseTagIDs(req.Tags)
	if err != nil {
		return nil, err
	}

	if err := s.checkFolderOwnership(ctx, userID, folderID); err != nil {
		return nil, err
	}
	if err := s.checkTagOwnership(ctx, userID, tagIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &Note{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Title:     title,
		Content:   sanitize.Clean(req.Content),
		FolderID:  folderID,
		TagIDs:    tagIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.log.Error(ErrCreateNote.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrCreateNote
	}

	views, err := s.populate(ctx, userID, []*Note{note})
	if err != nil {
		s.log.Error("failed to populate tags", "error", err, "user_id", userID.Hex())
		return nil, ErrCreateNote
	}
	return views[0], nil
}

// List returns the caller's notes matching the optional filters, tags
// resolved, most recently updated first.
func (s *Service) List(ctx context.Context, userID bson.ObjectID, req ListNotesRequest) ([]*NoteView, error) {
	var filter ListFilter
	filter.SearchTerm = req.SearchTerm

	if req.FolderID != "" {
		id, err := bson.ObjectIDFromHex(req.FolderID)
		if err != nil {
			return nil, ErrInvalidFolderID
		}
		filter.FolderID = &id
	}
	if req.TagID != "" {
		id, err := bson.ObjectIDFromHex(req.TagID)
		if err != nil {
			return nil, ErrInvalidTagID
		}
		filter.TagID = &id
	}

	notesList, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		s.log.Error(ErrListNotes.Error(), "error", err, "user_id", userID.Hex())
		return nil, ErrListNotes
	}

	views, err := s.populate(ctx, userID, notesList)
	if err != nil {
		s.log.Error("failed to populate tags", "error", err, "user_id", userID.Hex())
		return nil, ErrListNotes
	}
	return views, nil
}

// Get fetches a single owned note. A note owned by somebody else reads as
// plain absence, intentionally indistinguishable from "it never existed".
func (s *Service) Get(ctx context.Context, userID, noteID bson.ObjectID) (*NoteView, error) {
	note, err := s.repo.FindOne(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		s.log.Error(ErrGetNote.Error(), "error", err, "user_id", userID.Hex(), "note_id", noteID.Hex())
		return nil, ErrGetNote
	}

	views, err := s.populate(ctx, userID, []*Note{note})
	if err != nil {
		s.log.Error("failed to populate tags", "error", err, "user_id", userID.Hex())
		return nil, ErrGetNote
	}
	return views[0], nil
}

// buildPatch validates the supplied fields and turns them into a repository
// patch. Order matches create: title, folderId format, tags format.
func buildPatch(req UpdateNoteRequest) (UpdateNote, error) {
	var patch UpdateNote

	if req.Title != nil {
		title := sanitize.Clean(*req.Title)
		if title == "" {
			return patch, ErrMissingTitle
		}
		patch.Title = &title
	}

	if req.Content != nil {
		content := sanitize.Clean(*req.Content)
		patch.Content = &content
	}

	if req.FolderID != nil {
		if *req.FolderID == "" {
			patch.ClearFolder = true
		} else {
			id, err := bson.ObjectIDFromHex(*req.FolderID)
			if err != nil {
				return patch, ErrInvalidFolderID
			}
			patch.FolderID = &id
		}
	}

	if req.Tags != nil {
		ids, err := parseTagIDs(*req.Tags)
		if err != nil {
			return patch, err
		}
		patch.TagIDs = &ids
	}

	return patch, nil
}

// Update merges the supplied allow-listed fields into the owned note. All
// folder and tag ownership checks are awaited before the write reaches the
// repository.
func (s *Service) Update(ctx context.Context, userID, noteID bson.ObjectID, req UpdateNoteRequest) (*NoteView, error) {
	patch, err := buildPatch(req)
	if err != nil {
		return nil, err
	}

	if err := s.checkFolderOwnership(ctx, userID, patch.FolderID); err != nil {
		return nil, err
	}
	if patch.TagIDs != nil {
		if err := s.checkTagOwnership(ctx, userID, *patch.TagIDs); err != nil {
			return nil, err
		}
	}

	note, err := s.repo.Update(ctx, userID, noteID, patch)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			s.log.Info("note not found for update", "user_id", userID.Hex(), "note_id", noteID.Hex())
			return nil, ErrNoteNotFound
		}
		s.log.Error(ErrUpdateNote.Error(), "error", err, "user_id", userID.Hex(), "note_id", noteID.Hex())
		return nil, ErrUpdateNote
	}

	views, err := s.populate(ctx, userID, []*Note{note})
	if err != nil {
		s.log.Error("failed to populate tags", "error", err, "user_id", userID.Hex())
		return nil, ErrUpdateNote
	}
	return views[0], nil
}

// Delete removes the owned note. Deleting an absent or non-owned id succeeds
// silently; callers cannot tell "deleted" from "already gone".
func (s *Service) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	if err := s.repo.Delete(ctx, userID, noteID); err != nil {
		s.log.Error(ErrDeleteNote.Error(), "error", err, "user_id", userID.Hex(), "note_id", noteID.Hex())
		return ErrDeleteNote
	}
	return nil
}
