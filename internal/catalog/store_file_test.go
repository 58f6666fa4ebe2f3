package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"CourseCatalog/internal/catalog"
)

func newFileStore(t *testing.T) (*catalog.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course_catalog.json")
	return catalog.NewFileStore(path), path
}

func TestFileStore_LoadAll_MissingFile(t *testing.T) {
	s, _ := newFileStore(t)

	courses, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(courses) != 0 {
		t.Fatalf("len=%d want=0", len(courses))
	}
}

func TestFileStore_LoadAll_CorruptFile(t *testing.T) {
	s, path := newFileStore(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := s.LoadAll(context.Background())
	if !errors.Is(err, catalog.ErrCorruptStore) {
		t.Fatalf("err=%v, want ErrCorruptStore", err)
	}

	if err := s.Append(context.Background(), catalog.Course{Code: "C001"}); !errors.Is(err, catalog.ErrCorruptStore) {
		t.Fatalf("append on corrupt file: err=%v, want ErrCorruptStore", err)
	}
}

func TestFileStore_Append_RoundTrip(t *testing.T) {
	s, path := newFileStore(t)

	want := catalog.Course{
		Code:       "C001",
		Name:       "Intro",
		Instructor: "A. Smith",
		Semester:   "Fall 2026",
	}
	if err := s.Append(context.Background(), want); err != nil {
		t.Fatalf("Append: %v", err)
	}

	courses, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(courses) != 1 || courses[0] != want {
		t.Fatalf("courses=%+v", courses)
	}

	// survives a fresh store over the same file
	reopened, err := catalog.NewFileStore(path).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("reopen LoadAll: %v", err)
	}
	if len(reopened) != 1 || reopened[0] != want {
		t.Fatalf("reopened=%+v", reopened)
	}
}

func TestFileStore_Append_PreservesOrder(t *testing.T) {
	s, _ := newFileStore(t)

	for i := 0; i < 5; i++ {
		c := catalog.Course{Code: fmt.Sprintf("C%03d", i+1), Name: "N", Instructor: "I"}
		if err := s.Append(context.Background(), c); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	courses, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	for i, c := range courses {
		if want := fmt.Sprintf("C%03d", i+1); c.Code != want {
			t.Fatalf("courses[%d].Code=%s want=%s", i, c.Code, want)
		}
	}
}

func TestFileStore_ConcurrentAppends(t *testing.T) {
	s, _ := newFileStore(t)

	const n = 25

	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Append(context.Background(), catalog.Course{
				Code:       fmt.Sprintf("C%03d", i),
				Name:       "N",
				Instructor: "I",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	courses, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(courses) != n {
		t.Fatalf("len=%d want=%d (lost updates)", len(courses), n)
	}

	seen := make(map[string]int, n)
	for _, c := range courses {
		seen[c.Code]++
	}
	for code, count := range seen {
		if count != 1 {
			t.Fatalf("code %s appears %d times", code, count)
		}
	}
	if len(seen) != n {
		t.Fatalf("distinct codes=%d want=%d", len(seen), n)
	}
}

func TestFileStore_NoTempFileLeftBehind(t *testing.T) {
	s, path := newFileStore(t)

	if err := s.Append(context.Background(), catalog.Course{Code: "C001", Name: "N", Instructor: "I"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(path) {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("dir entries=%v", names)
	}
}
