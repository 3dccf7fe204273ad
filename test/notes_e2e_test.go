//go:build e2e

package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesE2E(t *testing.T) {
	env := SetupTestEnvironment(t)
	token := registerAndLogin(t, env.BaseURL, "noteuser", "Password123")
	headers := authHeader(token)

	var folderID, tagID, noteID string

	t.Run("create_folder_and_tag", func(t *testing.T) {
		folder := makeHTTPRequest(t, http.MethodPost, env.BaseURL+foldersEndpoint,
			map[string]string{"name": "Work"}, headers, http.StatusCreated)
		folderID = GetStringFromResponse(t, folder, "id")

		tag := makeHTTPRequest(t, http.MethodPost, env.BaseURL+tagsEndpoint,
			map[string]string{"name": "urgent"}, headers, http.StatusCreated)
		tagID = GetStringFromResponse(t, tag, "id")
	})

	t.Run("create_note_with_references", func(t *testing.T) {
		note := makeHTTPRequest(t, http.MethodPost, env.BaseURL+notesEndpoint, map[string]any{
			"title":    "Quarterly planning",
			"content":  "Discuss the quarterly targets",
			"folderId": folderID,
			"tags":     []string{tagID},
		}, headers, http.StatusCreated)

		noteID = GetStringFromResponse(t, note, "id")
		assert.Equal(t, "Quarterly planning", note["title"])
		assert.Equal(t, folderID, note["folderId"])

		// tags come back populated, not as raw ids
		noteTags, ok := note["tags"].([]any)
		require.True(t, ok)
		require.Len(t, noteTags, 1)
		assert.Equal(t, "urgent", noteTags[0].(map[string]any)["name"])
	})

	t.Run("create_note_rejects_unknown_folder", func(t *testing.T) {
		ExecuteHTTPJSONStep(t, HTTPJSONStep{
			Name:           "well-formed id that matches nothing",
			Method:         http.MethodPost,
			URL:            notesEndpoint,
			Body:           map[string]any{"title": "x", "folderId": "683cdb8aa96ad71e8e075bff"},
			Headers:        headers,
			ExpectedStatus: http.StatusBadRequest,
			Validator:      ErrorShapeValidator(http.StatusBadRequest, "The `folderId` is not valid"),
		}, env.BaseURL)
	})

	t.Run("create_note_requires_title", func(t *testing.T) {
		ExecuteHTTPJSONStep(t, HTTPJSONStep{
			Name:           "missing title",
			Method:         http.MethodPost,
			URL:            notesEndpoint,
			Body:           map[string]any{"content": "no title"},
			Headers:        headers,
			ExpectedStatus: http.StatusBadRequest,
			Validator:      ErrorShapeValidator(http.StatusBadRequest, "Missing `title` in request body"),
		}, env.BaseURL)
	})

	t.Run("list_and_filter", func(t *testing.T) {
		// A second note outside the folder, without tags.
		makeHTTPRequest(t, http.MethodPost, env.BaseURL+notesEndpoint,
			map[string]any{"title": "Groceries", "content": "milk"}, headers, http.StatusCreated)

		all := makeHTTPRequestList(t, http.MethodGet, env.BaseURL+notesEndpoint, headers, http.StatusOK)
		assert.Len(t, all, 2)
		// Most recently updated first.
		assert.Equal(t, "Groceries", all[0]["title"])

		byFolder := makeHTTPRequestList(t, http.MethodGet,
			env.BaseURL+notesEndpoint+"?folderId="+folderID, headers, http.StatusOK)
		require.Len(t, byFolder, 1)
		assert.Equal(t, noteID, byFolder[0]["id"])

		byTag := makeHTTPRequestList(t, http.MethodGet,
			env.BaseURL+notesEndpoint+"?tagId="+tagID, headers, http.StatusOK)
		require.Len(t, byTag, 1)

		bySearch := makeHTTPRequestList(t, http.MethodGet,
			env.BaseURL+notesEndpoint+"?searchTerm=quarterly", headers, http.StatusOK)
		require.Len(t, bySearch, 1, "search is case-insensitive and matches content")

		noMatch := makeHTTPRequestList(t, http.MethodGet,
			env.BaseURL+notesEndpoint+"?searchTerm=nothing-matches-this", headers, http.StatusOK)
		assert.Empty(t, noMatch)
	})

	t.Run("update_note", func(t *testing.T) {
		updated := makeHTTPRequest(t, http.MethodPut, env.BaseURL+notesEndpoint+"/"+noteID,
			map[string]any{"title": "Quarterly planning v2"}, headers, http.StatusOK)
		assert.Equal(t, "Quarterly planning v2", updated["title"])
		// untouched fields survive a partial update
		assert.Equal(t, folderID, updated["folderId"])
	})

	t.Run("update_clears_folder_with_empty_string", func(t *testing.T) {
		updated := makeHTTPRequest(t, http.MethodPut, env.BaseURL+notesEndpoint+"/"+noteID,
			map[string]any{"folderId": ""}, headers, http.StatusOK)
		assert.NotContains(t, updated, "folderId")
	})

	t.Run("delete_is_idempotent", func(t *testing.T) {
		makeHTTPRequest(t, http.MethodDelete, env.BaseURL+notesEndpoint+"/"+noteID, nil, headers, http.StatusNoContent)
		// second delete of the same id answers identically
		makeHTTPRequest(t, http.MethodDelete, env.BaseURL+notesEndpoint+"/"+noteID, nil, headers, http.StatusNoContent)

		makeHTTPRequest(t, http.MethodGet, env.BaseURL+notesEndpoint+"/"+noteID, nil, headers, http.StatusNotFound)
	})

	t.Run("malformed_id_is_bad_request", func(t *testing.T) {
		ExecuteHTTPJSONStep(t, HTTPJSONStep{
			Name:           "garbage id in path",
			Method:         http.MethodGet,
			URL:            notesEndpoint + "/not-an-id",
			Headers:        headers,
			ExpectedStatus: http.StatusBadRequest,
			Validator:      ErrorShapeValidator(http.StatusBadRequest, "The `id` is not valid"),
		}, env.BaseURL)
	})
}
