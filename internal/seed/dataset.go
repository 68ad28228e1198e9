// Package seed loads fixture datasets into the database through the
// repositories' COPY-based batch inserts.
package seed

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/news-aggregator-api/internal/models"
)

//go:embed data/test/*.json
var testFiles embed.FS

// TestData is the small fixture dataset used by tests and by cmd/seed when no
// directory is given.
var TestData fs.FS = mustSub(testFiles, "data/test")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Dataset is one complete set of fixtures. Articles receive ids in slice order
// starting at 1, which is what comment article_id values refer to.
type Dataset struct {
	Topics   []*models.Topic
	Users    []*models.User
	Articles []*models.ArticleSeed
	Comments []*models.CommentSeed
}

// LoadDataset reads topics.json, users.json, articles.json and comments.json
// from fsys and checks that every reference resolves within the dataset.
func LoadDataset(fsys fs.FS) (*Dataset, error) {
	ds := &Dataset{}
	files := []struct {
		name string
		dst  interface{}
	}{
		{"topics.json", &ds.Topics},
		{"users.json", &ds.Users},
		{"articles.json", &ds.Articles},
		{"comments.json", &ds.Comments},
	}

	for _, f := range files {
		data, err := fs.ReadFile(fsys, f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := json.Unmarshal(data, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate reports every broken reference and missing key in the dataset
func (ds *Dataset) Validate() error {
	var errs []error

	topics := make(map[string]bool, len(ds.Topics))
	for i, t := range ds.Topics {
		if t.Slug == "" {
			errs = append(errs, fmt.Errorf("topics[%d]: slug is required", i))
			continue
		}
		if topics[t.Slug] {
			errs = append(errs, fmt.Errorf("topics[%d]: duplicate slug %q", i, t.Slug))
		}
		topics[t.Slug] = true
	}

	users := make(map[string]bool, len(ds.Users))
	for i, u := range ds.Users {
		if u.Username == "" {
			errs = append(errs, fmt.Errorf("users[%d]: username is required", i))
			continue
		}
		if users[u.Username] {
			errs = append(errs, fmt.Errorf("users[%d]: duplicate username %q", i, u.Username))
		}
		users[u.Username] = true
	}

	for i, a := range ds.Articles {
		if !topics[a.Topic] {
			errs = append(errs, fmt.Errorf("articles[%d]: unknown topic %q", i, a.Topic))
		}
		if !users[a.Author] {
			errs = append(errs, fmt.Errorf("articles[%d]: unknown author %q", i, a.Author))
		}
	}

	for i, c := range ds.Comments {
		if c.ArticleID < 1 || c.ArticleID > len(ds.Articles) {
			errs = append(errs, fmt.Errorf("comments[%d]: unknown article_id %d", i, c.ArticleID))
		}
		if !users[c.Author] {
			errs = append(errs, fmt.Errorf("comments[%d]: unknown author %q", i, c.Author))
		}
	}

	return errors.Join(errs...)
}
