package python

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Language returns the Tree-sitter grammar for Python
func Language() *tree_sitter.Language {
	return tree_sitter.NewLanguage(tree_sitter_python.Language())
}

// Parse parses Python source code and returns a Tree-sitter tree
func Parse(source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(Language()); err != nil {
		return nil, fmt.Errorf("error setting language: %w", err)
	}

	tree := parser.Parse(source, nil)

	return tree, nil
}
