package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/fractalsim/internal/escape"
	"github.com/san-kum/fractalsim/internal/session"
)

var ErrInvalidName = errors.New("storage: invalid bookmark name")

const metaFile = "bookmark.json"

// Store keeps bookmarks as one directory each under baseDir. Only view
// parameters are stored, never pixels.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type Point struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type Bookmark struct {
	Name          string    `json:"name"`
	Timestamp     time.Time `json:"timestamp"`
	C             Point     `json:"c"`
	Center        Point     `json:"center"`
	Zoom          float64   `json:"zoom"`
	MaxIterations uint32    `json:"max_iterations"`
	Palette       string    `json:"palette,omitempty"`
	Coloring      string    `json:"coloring,omitempty"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
}

func NewBookmark(name string, p session.Params) Bookmark {
	return Bookmark{
		Name:          name,
		Timestamp:     time.Now(),
		C:             Point{p.C.Re, p.C.Im},
		Center:        Point{p.Center.Re, p.Center.Im},
		Zoom:          p.Zoom,
		MaxIterations: p.MaxIterations,
	}
}

func (b Bookmark) Params() session.Params {
	zoom := b.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return session.Params{
		C:             escape.Point{Re: b.C.Re, Im: b.C.Im},
		Center:        escape.Point{Re: b.Center.Re, Im: b.Center.Im},
		Zoom:          zoom,
		MaxIterations: b.MaxIterations,
	}
}

func (s *Store) dir(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.baseDir, name), nil
}

// Save writes b, replacing any bookmark with the same name.
func (s *Store) Save(b Bookmark) error {
	dir, err := s.dir(b.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, metaFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

func (s *Store) Load(name string) (*Bookmark, error) {
	dir, err := s.dir(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil {
		return nil, err
	}

	var b Bookmark
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every readable bookmark, oldest first.
func (s *Store) List() ([]Bookmark, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Bookmark{}, nil
		}
		return nil, err
	}

	marks := make([]Bookmark, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		b, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		marks = append(marks, *b)
	}

	sort.Slice(marks, func(i, j int) bool {
		if marks[i].Timestamp.Equal(marks[j].Timestamp) {
			return marks[i].Name < marks[j].Name
		}
		return marks[i].Timestamp.Before(marks[j].Timestamp)
	})
	return marks, nil
}

func (s *Store) Delete(name string) error {
	dir, err := s.dir(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, metaFile)); err != nil {
		return err
	}
	return os.RemoveAll(dir)
}

// NextName returns prefix-N for the lowest N not yet taken.
func (s *Store) NextName(prefix string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s-%d", prefix, n)
		if _, err := os.Stat(filepath.Join(s.baseDir, name)); os.IsNotExist(err) {
			return name
		}
	}
}
