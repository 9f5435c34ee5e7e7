// Package descriptor loads a convert-list descriptor and, recursively, every
// file it includes, flattening them into ordered <global> and <item> blocks.
package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
)

// Load reads the descriptor at path and expands its <include> elements
// depth first: an included file contributes its own includes, then its
// globals, then its items, before the including file's blocks are appended.
//
// A file that includes one of its ancestors fails with ErrIncludeCycle. The
// same file reached through two different branches is loaded twice.
func Load(path string) (*Tree, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoInput
	}
	t := &Tree{Root: path}
	if err := t.load(path, nil); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) load(path string, chain []string) error {
	key := canonical(path)
	for _, ancestor := range chain {
		if ancestor == key {
			return fmt.Errorf("%w: %s -> %s", ErrIncludeCycle, strings.Join(chain, " -> "), key)
		}
	}
	chain = append(chain, key)

	root, err := parseFile(path)
	if err != nil {
		return err
	}
	load := len(t.Files)
	t.Files = append(t.Files, path)

	dir := filepath.Dir(path)
	for _, inc := range root.ChildrenNamed("include") {
		ref := inc.Value()
		if ref == "" {
			continue
		}
		if err := t.load(ResolveInclude(dir, ref), chain); err != nil {
			return err
		}
	}

	for _, g := range root.ChildrenNamed("global") {
		t.Globals = append(t.Globals, ConfigNode{SourceFile: path, Load: load, Element: g})
	}
	for _, list := range root.ChildrenNamed("list") {
		for _, item := range list.ChildrenNamed("item") {
			t.Items = append(t.Items, ConfigNode{SourceFile: path, Load: load, Element: item})
		}
	}
	return nil
}

// ResolveInclude returns ref unchanged when it is absolute (leading path
// separator or a drive letter such as "C:"), otherwise ref joined to dir.
func ResolveInclude(dir, ref string) string {
	if isAbsRef(ref) {
		return ref
	}
	return filepath.Join(dir, ref)
}

func isAbsRef(ref string) bool {
	if ref == "" {
		return false
	}
	if ref[0] == '/' || ref[0] == '\\' {
		return true
	}
	return len(ref) > 1 && ref[1] == ':'
}

func canonical(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func parseFile(path string) (Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return Element{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, name string) (Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root Element
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Element{}, fmt.Errorf("%w: %s", ErrNoRoot, name)
		}
		return Element{}, fmt.Errorf("%w: %s: %w", ErrParse, name, err)
	}
	return root, nil
}
