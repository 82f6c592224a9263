package utils

import (
	"bufio"
	"os"
	"strings"
)

// Blacklist holds terms used to skip unwanted coubs by title or tag
type Blacklist struct {
	terms []string
}

// LoadBlacklist loads blacklist terms from a file, one per line. Blank lines
// and lines starting with # are ignored. A missing file yields an empty
// blacklist.
func LoadBlacklist(path string) (*Blacklist, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Blacklist{terms: []string{}}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var terms []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term != "" && !strings.HasPrefix(term, "#") {
			terms = append(terms, term)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Blacklist{terms: terms}, nil
}

// MatchesAny checks whether any of the given texts contains a blacklist
// term, case-insensitively. Returns (matched, matchedTerm).
func (b *Blacklist) MatchesAny(texts ...string) (bool, string) {
	for _, term := range b.terms {
		termLower := strings.ToLower(term)
		for _, text := range texts {
			if strings.Contains(strings.ToLower(text), termLower) {
				return true, term
			}
		}
	}

	return false, ""
}
