package options

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/backmassage/xresconv/internal/argv"
	"github.com/backmassage/xresconv/internal/descriptor"
)

// ConvItem is one <item> of the convert list. File and Scheme are "" when
// the attribute is absent or empty.
type ConvItem struct {
	File         string
	Scheme       string
	LocalOptions []string
	SchemeData   SchemeMap
	Tags         TokenSet
	Classes      TokenSet
	Enabled      bool
	Source       string
}

// Label names the item in logs and previews.
func (it ConvItem) Label() string {
	switch {
	case it.File != "" && it.Scheme != "":
		return it.File + ":" + it.Scheme
	case it.Scheme != "":
		return it.Scheme
	case it.File != "":
		return it.File
	}
	var parts []string
	for _, k := range it.SchemeData.Keys() {
		parts = append(parts, k+"="+strings.Join(it.SchemeData.Get(k), ","))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// LoadItems parses item blocks. Scheme keys missing from an item are filled
// from g.DefaultSchemes; keys the item declares keep only the item's values.
// With a non-empty schemeFilter only items whose scheme is listed are enabled.
func LoadItems(nodes []descriptor.ConfigNode, g GlobalConfig, schemeFilter []string) ([]ConvItem, []Warning) {
	var (
		items    []ConvItem
		warnings []Warning
	)
	for _, n := range nodes {
		el := n.Element
		it := ConvItem{Source: n.SourceFile}
		if v, ok := el.Attr("file"); ok {
			it.File = strings.TrimSpace(v)
		}
		if v, ok := el.Attr("scheme"); ok {
			it.Scheme = strings.TrimSpace(v)
		}
		if v, ok := el.Attr("tag"); ok {
			it.Tags = ParseTokens(v)
		}
		if v, ok := el.Attr("class"); ok {
			it.Classes = ParseTokens(v)
		}

		for _, opt := range el.ChildrenNamed("option") {
			toks, err := argv.Tokenize(opt.Value())
			if err != nil {
				warnings = append(warnings, Warning{File: n.SourceFile, Tag: "option", Msg: "ignored: " + err.Error()})
				continue
			}
			it.LocalOptions = append(it.LocalOptions, toks...)
		}

		for _, sc := range el.ChildrenNamed("scheme") {
			v := sc.Value()
			if v == "" {
				continue
			}
			name, _ := sc.Attr("name")
			name = strings.TrimSpace(name)
			if name == "" {
				warnings = append(warnings, Warning{File: n.SourceFile, Tag: "scheme", Msg: "missing name attribute"})
				continue
			}
			it.SchemeData.Append(name, v)
		}
		for _, k := range g.DefaultSchemes.Keys() {
			if it.SchemeData.Has(k) {
				continue
			}
			for _, v := range g.DefaultSchemes.Get(k) {
				it.SchemeData.Append(k, v)
			}
		}

		it.Enabled = len(schemeFilter) == 0 || slices.Contains(schemeFilter, it.Scheme)
		items = append(items, it)
	}
	return items, warnings
}

// ResolveWorkDir returns the directory converters run in: WorkDir taken
// relative to the directory of the root descriptor.
func (g GlobalConfig) ResolveWorkDir(descriptorPath string) string {
	wd := g.WorkDir
	if wd == "" {
		wd = DefaultWorkDir
	}
	if filepath.IsAbs(wd) {
		return filepath.Clean(wd)
	}
	return filepath.Join(filepath.Dir(descriptorPath), wd)
}

// ConverterFile returns the converter jar path, relative paths taken from
// workDir.
func (g GlobalConfig) ConverterFile(workDir string) string {
	p := g.ConverterPath
	if p == "" {
		p = DefaultConverterPath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
