package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// ----------------------------------------------------------------------------
// Config ---------------------------------------------------------------------
var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	username = flag.String("user", env("USERNAME", "demo"), "Username")
	pass     = flag.String("pass", env("PASSWORD", "Password123"), "User password")
	nNotes   = flag.Int("n", envInt("COUNT", 200), "How many notes to create")
	nFolders = flag.Int("folders", envInt("FOLDERS", 5), "How many folders to create")
	nTags    = flag.Int("tags", envInt("TAGS", 10), "How many tags to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		i, err := fmt.Sscan(v, &i)
		if err != nil {
			return def
		}
		if i > 0 {
			return i
		}
	}
	return def
}

// ----------------------------------------------------------------------------
// HTTP helpers ---------------------------------------------------------------
func postJSON(path string, body any, hdr map[string]string) (*http.Response, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return http.DefaultClient.Do(req)
}

func must(body io.ReadCloser) []byte {
	defer body.Close()
	data, _ := io.ReadAll(body)
	return data
}

// ----------------------------------------------------------------------------
// Main -----------------------------------------------------------------------
func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	fmt.Printf("Init account %s (notes=%d folders=%d tags=%d) on %s\n",
		*username, *nNotes, *nFolders, *nTags, *baseURL)

	token, err := ensureUser()
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	folderIDs, err := createNamed(token, "/api/folders", *nFolders, gofakeit.ProductCategory)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	tagIDs, err := createNamed(token, "/api/tags", *nTags, gofakeit.HackerAdjective)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	if err := createNotes(token, *nNotes, folderIDs, tagIDs); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	fmt.Println("✔ done")
}

// ----------------------------------------------------------------------------
// Step 1 – make sure the user exists -----------------------------------------
func ensureUser() (string, error) {
	register := map[string]string{
		"username": *username,
		"password": *pass,
		"fullname": gofakeit.Name(),
	}

	// Try registration first …
	if resp, err := postJSON("/api/users", register, nil); err == nil && resp.StatusCode < 300 {
		must(resp.Body)
		fmt.Println("• registered new user")
	}

	// … then log in either way.
	login := map[string]string{"username": *username, "password": *pass}
	resp, err := postJSON("/api/login", login, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed (%d): %s", resp.StatusCode, must(resp.Body))
	}
	var r struct {
		AuthToken string `json:"authToken"`
	}
	_ = json.Unmarshal(must(resp.Body), &r)
	fmt.Println("• logged in")
	return r.AuthToken, nil
}

// ----------------------------------------------------------------------------
// Step 2 – folders and tags ---------------------------------------------------
func createNamed(token, path string, total int, gen func() string) ([]string, error) {
	h := map[string]string{"Authorization": "Bearer " + token}
	ids := make([]string, 0, total)

	for i := 1; i <= total; i++ {
		// Names are unique per user, so suffix with the index.
		name := fmt.Sprintf("%s %d", gen(), i)
		resp, err := postJSON(path, map[string]string{"name": name}, h)
		if err != nil {
			return nil, err
		}
		body := must(resp.Body)
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("create %s %d failed (%d): %s", path, i, resp.StatusCode, body)
		}
		var r struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &r)
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// ----------------------------------------------------------------------------
// Step 3 – notes --------------------------------------------------------------
func createNotes(token string, total int, folderIDs, tagIDs []string) error {
	h := map[string]string{"Authorization": "Bearer " + token}

	for i := 1; i <= total; i++ {
		note := map[string]any{
			"title":   gofakeit.Sentence(3),
			"content": gofakeit.Paragraph(1, 3, 40, " "),
		}
		if len(folderIDs) > 0 && gofakeit.Bool() {
			note["folderId"] = folderIDs[gofakeit.Number(0, len(folderIDs)-1)]
		}
		if len(tagIDs) > 0 {
			n := gofakeit.Number(0, 3)
			picked := make([]string, 0, n)
			seen := map[string]bool{}
			for len(picked) < n {
				id := tagIDs[gofakeit.Number(0, len(tagIDs)-1)]
				if !seen[id] {
					seen[id] = true
					picked = append(picked, id)
				}
			}
			note["tags"] = picked
		}

		resp, err := postJSON("/api/notes", note, h)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusCreated {
			return fmt.Errorf("create note %d failed (%d): %s", i, resp.StatusCode, must(resp.Body))
		}

		if i%50 == 0 || i == total {
			fmt.Printf("  … %d/%d\n", i, total)
		}
	}
	return nil
}
