// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadLexicon reads extra keywords from a YAML file and appends them to the
// built-in lists. The file holds two optional sequences:
//
//	academic:
//	  - teaching hospital
//	industry:
//	  - bayer
//
// Terms are lowercased on load since matching is case-insensitive.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()

	data, err := os.ReadFile(path)
	if err != nil {
		return lex, fmt.Errorf("reading lexicon file: %w", err)
	}

	var extra Lexicon
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return lex, fmt.Errorf("parsing lexicon file %s: %w", path, err)
	}

	lex.Academic = append(lex.Academic, lowerAll(extra.Academic)...)
	lex.Industry = append(lex.Industry, lowerAll(extra.Industry)...)
	return lex, nil
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
