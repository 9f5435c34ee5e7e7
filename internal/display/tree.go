package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/backmassage/xresconv/internal/argv"
	"github.com/backmassage/xresconv/internal/options"
)

// Tree returns a new tree with common styling applied.
func Tree() *tree.Tree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return t
}

// BranchNode creates a styled section header node.
func BranchNode(title string, count string) *tree.Tree {
	return tree.New().Root(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			HeaderStyle.Render(title),
			" ",
			InfoStyle.Render(count),
		),
	)
}

// optionWidth caps option lines in the tree; the full line is in the
// dry-run preview.
const optionWidth = 72

func kv(key, value string) string {
	return key + " " + ValueStyle.Render(value)
}

func count(n int, word string) string {
	return "(" + Plural(n, word) + ")"
}

// ConfigTree renders the merged configuration of a descriptor: paths,
// scalar flags, extra options, default schemes, the output matrix and the
// items with their enabled state.
func ConfigTree(root string, g options.GlobalConfig, items []options.ConvItem) *tree.Tree {
	t := Tree().Root(RootStyle.Render(root))

	paths := BranchNode("Paths", "")
	paths.Child(kv("work_dir", g.WorkDir))
	paths.Child(kv("xresloader_path", g.ConverterPath))
	if g.DataVersion != nil {
		paths.Child(kv("data_version", *g.DataVersion))
	}
	t.Child(paths)

	keys := g.ScalarArgs.Keys()
	scalars := BranchNode("Arguments", count(len(keys), "flag"))
	for _, k := range keys {
		v, _ := g.ScalarArgs.Get(k)
		scalars.Child(kv(k, argv.Quote(v)))
	}
	t.Child(scalars)

	if len(g.ExtraArgsPre) > 0 || len(g.ExtraArgsPost) > 0 || len(g.JavaOptions) > 0 {
		extra := BranchNode("Options", "")
		if len(g.ExtraArgsPre) > 0 {
			extra.Child(kv("option", Truncate(argv.Join(g.ExtraArgsPre), optionWidth)))
		}
		if len(g.ExtraArgsPost) > 0 {
			extra.Child(kv("passthrough", Truncate(argv.Join(g.ExtraArgsPost), optionWidth)))
		}
		if len(g.JavaOptions) > 0 {
			extra.Child(kv("java_option", argv.Join(g.JavaOptions)))
		}
		t.Child(extra)
	}

	if g.DefaultSchemes.Len() > 0 {
		schemes := BranchNode("Default schemes", count(g.DefaultSchemes.Len(), "key"))
		for _, k := range g.DefaultSchemes.Keys() {
			schemes.Child(kv(k, strings.Join(g.DefaultSchemes.Get(k), ", ")))
		}
		t.Child(schemes)
	}

	matrix := BranchNode("Output matrix", count(len(g.OutputMatrix), "rule"))
	for i, r := range g.OutputMatrix {
		matrix.Child(ruleNode(i, r))
	}
	if g.MatrixSource != "" {
		matrix.Child(InfoStyle.Render("from " + g.MatrixSource))
	}
	t.Child(matrix)

	enabled := 0
	for _, it := range items {
		if it.Enabled {
			enabled++
		}
	}
	list := BranchNode("Items", fmt.Sprintf("(%d/%d enabled)", enabled, len(items)))
	for _, it := range items {
		label := it.Label()
		if !it.Enabled {
			label = InfoStyle.Render(label + " (disabled)")
		}
		node := tree.New().Root(label)
		if len(it.Tags) > 0 {
			node.Child(kv("tag", it.Tags.String()))
		}
		if len(it.Classes) > 0 {
			node.Child(kv("class", it.Classes.String()))
		}
		if len(it.LocalOptions) > 0 {
			node.Child(kv("option", Truncate(argv.Join(it.LocalOptions), optionWidth)))
		}
		list.Child(node)
	}
	t.Child(list)
	return t
}

func ruleNode(i int, r options.OutputRule) string {
	typ := r.Type
	if typ == "" {
		typ = "(global)"
	}
	parts := []string{fmt.Sprintf("#%d %s", i, ValueStyle.Render(typ))}
	if r.Rename != "" {
		parts = append(parts, "rename="+r.Rename)
	}
	if len(r.Tags) > 0 {
		parts = append(parts, "tag="+r.Tags.String())
	}
	if len(r.Classes) > 0 {
		parts = append(parts, "class="+r.Classes.String())
	}
	return strings.Join(parts, " ")
}
