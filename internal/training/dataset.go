package training

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Person is one enrollment candidate discovered in the dataset tree.
type Person struct {
	ID     string   // slug derived from the folder name
	Name   string   // folder name as-is, used as the display name
	Images []string // absolute paths of the person's sample images
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// removeDiacritics strips diacritical marks from a string (e.g. "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Slug normalizes a person's folder name into a stable identity id:
// diacritics removed, lowercased, runs of non-alphanumerics collapsed to a
// single dash.
func Slug(name string) string {
	name = removeDiacritics(name)
	name = strings.ToLower(name)

	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// DiscoverDataset walks the dataset root and returns one Person per folder
// that directly contains image files. Nested grouping levels (for example
// dataset/institution/person/img.jpg) are allowed; the person is always the
// folder the images live in. Results are sorted by folder name for a stable
// enrollment order.
func DiscoverDataset(root string) ([]Person, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("dataset root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset root %q is not a directory", root)
	}

	byDir := make(map[string][]string)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk dataset: %w", err)
	}

	var people []Person
	for dir, images := range byDir {
		name := filepath.Base(dir)
		sort.Strings(images)
		people = append(people, Person{
			ID:     Slug(name),
			Name:   name,
			Images: images,
		})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return people, nil
}
