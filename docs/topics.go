// Package docs holds the user guide of rpa, one markdown page per topic.
//
// The readme page is the entry point and links every other topic by name.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
)

//go:embed *.md
var pages embed.FS

// Readme is the name of the entry page.
const Readme = "readme"

// Topic is one page of the guide.
type Topic struct {
	Name  string // file name without the .md extension
	Title string // first heading of the page
}

// index lists the pages once, sorted by name, readme excluded.
var index = sync.OnceValues(func() ([]Topic, error) {
	entries, err := fs.ReadDir(pages, ".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == Readme {
			continue
		}
		page, err := pages.ReadFile(e.Name())
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(string(page), name)})
	}
	slices.SortFunc(topics, func(a, b Topic) int { return strings.Compare(a.Name, b.Name) })
	return topics, nil
})

// title returns the text of the first "# " heading, or fallback.
func title(page, fallback string) string {
	sc := bufio.NewScanner(strings.NewReader(page))
	for sc.Scan() {
		if h, ok := strings.CutPrefix(sc.Text(), "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	return fallback
}

// Topics returns the pages of the guide, readme excluded.
func Topics() ([]Topic, error) { return index() }

// GetAllTopics returns the sorted names of the pages, readme excluded.
func GetAllTopics() ([]string, error) {
	topics, err := index()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names, nil
}

// GetTopic returns the markdown of one page. "*" returns every page but the
// readme.
func GetTopic(name string) (string, error) {
	if name == "*" {
		names, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(names...)
	}
	page, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, see 'rpa topic -list': %w", name, err)
	}
	return string(page), nil
}

// GetTopics returns the markdown of several pages, one after the other.
func GetTopics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		page, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(page)
		b.WriteString("\n")
	}
	return b.String(), nil
}
