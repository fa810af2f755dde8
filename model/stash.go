package model

import (
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

/*
ModelStash keeps per-iteration model snapshots in a temporary directory,
pruning iterations fallen out of the score history window. The best
iteration snapshot is copied to the final model file when training ends.
*/
type ModelStash struct {
	history int
	pattern string
	dir     string
	files   map[int]string
}

/*
NewStash creates a stash holding up to history snapshots named by pattern
*/
func NewStash(history int, pattern string) *ModelStash {
	return &ModelStash{
		history: history,
		pattern: pattern,
		files:   map[int]string{},
	}
}

/*
Output returns the writable snapshot slot of the given iteration
*/
func (s *ModelStash) Output(iteration int) (iokit.Output, error) {
	if s.dir == "" {
		dir, err := ioutil.TempDir("", "model-stash-")
		if err != nil {
			return nil, zorros.Trace(err)
		}
		s.dir = dir
	}
	name := strings.Replace(s.pattern, "*", strconv.Itoa(iteration), 1)
	path := filepath.Join(s.dir, name)
	s.files[iteration] = path
	for j := range s.files {
		if j <= iteration-s.history {
			_ = os.Remove(s.files[j])
			delete(s.files, j)
		}
	}
	return iokit.File(path), nil
}

/*
Reader opens the snapshot of the given iteration
*/
func (s *ModelStash) Reader(iteration int) (io.ReadCloser, error) {
	path, ok := s.files[iteration]
	if !ok {
		return nil, zorros.Errorf("no model stashed for iteration %v", iteration)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	return f, nil
}

func (s *ModelStash) Close() error {
	if s.dir != "" {
		return os.RemoveAll(s.dir)
	}
	return nil
}
