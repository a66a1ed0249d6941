// Package wordlist loads the plain-text word and topic list files: one
// entry per line, lines starting with # ignored as comments, blank lines
// ignored.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"scrub/internal/services"
)

// Load reads entries from path in file order, deduplicating repeats
// case-insensitively while keeping each entry's first surface form.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrInputNotFound, "wordlist", "load", path, nil)
		}
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	seen := make(map[string]struct{})
	var entries []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "wordlist", "load", path+" has no entries", nil)
	}
	return entries, nil
}
