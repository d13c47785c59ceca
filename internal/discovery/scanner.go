package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dbc/internal/config"
)

// Scanner inspects the compiled class corpus of the subjects directory
type Scanner struct {
	config *config.Config
}

// NewScanner creates a Scanner over the configured subjects directory
func NewScanner(cfg *config.Config) *Scanner {
	return &Scanner{config: cfg}
}

// Subjects returns the names of subdirectories that contain a classes tree, sorted
func (s *Scanner) Subjects() ([]string, error) {
	root := filepath.Clean(s.config.SubjectsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("subjects path does not exist: %s", root)
	}

	var subjects []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := os.Stat(s.config.GetClassesDir(entry.Name()))
		if err == nil && info.IsDir() {
			subjects = append(subjects, entry.Name())
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// CountClasses counts the .class files under a subject's classes tree
func (s *Scanner) CountClasses(subject string) (int, error) {
	dir := s.config.GetClassesDir(subject)
	info, err := os.Stat(dir)
	if err != nil {
		return 0, fmt.Errorf("classes path does not exist: %s", dir)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("classes path is not a directory: %s", dir)
	}

	count := 0
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			// Skip hidden directories (starting with .)
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(d.Name(), ".class") {
			count++
		}
		return nil
	})

	return count, err
}
