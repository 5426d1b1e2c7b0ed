package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// StopwordSet is an immutable set of words excluded from keyword extraction.
// It is loaded once at process start and never mutated afterwards.
type StopwordSet map[string]struct{}

// Contains reports whether word is in the set.
func (s StopwordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// LoadStopwords reads a newline-delimited word list. Blank lines are
// skipped; surrounding whitespace is trimmed.
func LoadStopwords(path string) (StopwordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopword list: %w", err)
	}
	defer f.Close()

	set := make(StopwordSet)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopword list: %w", err)
	}

	return set, nil
}
