package descriptor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func globalValues(nodes []ConfigNode, tag string) []string {
	var out []string
	for _, n := range nodes {
		for _, c := range n.Element.ChildrenNamed(tag) {
			out = append(out, c.Value())
		}
	}
	return out
}

func itemFiles(nodes []ConfigNode) []string {
	var out []string
	for _, n := range nodes {
		f, _ := n.Element.Attr("file")
		out = append(out, f)
	}
	return out
}

func TestLoad_NoIncludesKeepsDocumentOrder(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "list.xml", `<?xml version="1.0" encoding="UTF-8"?>
<root>
  <global><work_dir>one</work_dir></global>
  <list>
    <item file="a.xlsx" scheme="s1" />
    <item file="b.xlsx" scheme="s2" />
  </list>
  <global><work_dir>two</work_dir></global>
  <list>
    <item file="c.xlsx" scheme="s3" />
  </list>
</root>`)

	tree, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{root}, tree.Files)
	assert.Equal(t, []string{"one", "two"}, globalValues(tree.Globals, "work_dir"))
	assert.Equal(t, []string{"a.xlsx", "b.xlsx", "c.xlsx"}, itemFiles(tree.Items))
	for _, n := range append(tree.Globals, tree.Items...) {
		assert.Equal(t, root, n.SourceFile)
	}
}

func TestLoad_IncludesAreDepthFirstAndRelative(t *testing.T) {
	dir := t.TempDir()
	leaf := writeFile(t, dir, "sub/deeper/leaf.xml", `<root>
  <global><proto>leaf</proto></global>
  <list><item file="leaf.xlsx"/></list>
</root>`)
	mid := writeFile(t, dir, "sub/mid.xml", `<root>
  <include>deeper/leaf.xml</include>
  <global><proto>mid</proto></global>
  <list><item file="mid.xlsx"/></list>
</root>`)
	root := writeFile(t, dir, "root.xml", `<root>
  <global><proto>root</proto></global>
  <include>  sub/mid.xml  </include>
  <include></include>
  <list><item file="root.xlsx"/></list>
</root>`)

	tree, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{root, mid, leaf}, tree.Files)
	assert.Equal(t, []string{"leaf", "mid", "root"}, globalValues(tree.Globals, "proto"))
	assert.Equal(t, []string{"leaf.xlsx", "mid.xlsx", "root.xlsx"}, itemFiles(tree.Items))
	assert.Equal(t, leaf, tree.Globals[0].SourceFile)
	assert.Equal(t, root, tree.Items[2].SourceFile)
}

func TestLoad_AbsoluteInclude(t *testing.T) {
	dir := t.TempDir()
	shared := writeFile(t, dir, "shared/common.xml", `<root><global><proto>shared</proto></global></root>`)
	root := writeFile(t, dir, "project/root.xml", `<root><include>`+shared+`</include></root>`)

	tree, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, globalValues(tree.Globals, "proto"))
}

func TestLoad_DiamondIncludeLoadsTwice(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.xml", `<root><global><option>-x</option></global></root>`)
	writeFile(t, dir, "a.xml", `<root><include>common.xml</include></root>`)
	writeFile(t, dir, "b.xml", `<root><include>common.xml</include></root>`)
	root := writeFile(t, dir, "root.xml", `<root><include>a.xml</include><include>b.xml</include></root>`)

	tree, err := Load(root)
	require.NoError(t, err)
	require.Len(t, tree.Globals, 2)
	assert.Len(t, tree.Files, 5)
	assert.Equal(t, tree.Globals[0].SourceFile, tree.Globals[1].SourceFile)
	assert.NotEqual(t, tree.Globals[0].Load, tree.Globals[1].Load)
	for _, n := range tree.Globals {
		assert.Equal(t, n.SourceFile, tree.Files[n.Load])
	}
}

func TestLoad_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	self := writeFile(t, dir, "self.xml", `<root><include>self.xml</include></root>`)
	_, err := Load(self)
	require.ErrorIs(t, err, ErrIncludeCycle)

	writeFile(t, dir, "a.xml", `<root><include>b.xml</include></root>`)
	writeFile(t, dir, "b.xml", `<root><include>a.xml</include></root>`)
	_, err = Load(filepath.Join(dir, "a.xml"))
	require.ErrorIs(t, err, ErrIncludeCycle)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "bad.xml", `<root><global></root>`)
	empty := writeFile(t, dir, "empty.xml", `<?xml version="1.0"?>
<!-- nothing here -->
`)
	brokenInclude := writeFile(t, dir, "inc.xml", `<root><include>missing.xml</include></root>`)

	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrNoInput},
		{"missing file", filepath.Join(dir, "nope.xml"), ErrRead},
		{"malformed xml", malformed, ErrParse},
		{"no root element", empty, ErrNoRoot},
		{"missing include", brokenInclude, ErrRead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Load(tt.path)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, tree)
		})
	}
}

func TestLoad_DeclaredCharset(t *testing.T) {
	dir := t.TempDir()
	body, err := simplifiedchinese.GBK.NewEncoder().String(`<?xml version="1.0" encoding="GBK"?>
<root><list><item file="道具表.xlsx" scheme="道具"/></list></root>`)
	require.NoError(t, err)
	root := writeFile(t, dir, "gbk.xml", body)

	tree, err := Load(root)
	require.NoError(t, err)
	require.Len(t, tree.Items, 1)
	scheme, ok := tree.Items[0].Element.Attr("scheme")
	assert.True(t, ok)
	assert.Equal(t, "道具", scheme)
	assert.Equal(t, []string{"道具表.xlsx"}, itemFiles(tree.Items))
}

func TestResolveInclude(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		ref  string
		want string
	}{
		{"relative", "conf", "sub/a.xml", filepath.Join("conf", "sub/a.xml")},
		{"unix absolute", "conf", "/etc/a.xml", "/etc/a.xml"},
		{"backslash absolute", "conf", `\\share\a.xml`, `\\share\a.xml`},
		{"drive letter", "conf", `D:\data\a.xml`, `D:\data\a.xml`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveInclude(tt.dir, tt.ref))
		})
	}
}

func TestElementHelpers(t *testing.T) {
	root, err := parse(strings.NewReader(`<item file="a.xlsx"><option> -x </option><option/><scheme name="k">v</scheme></item>`), "inline")
	require.NoError(t, err)

	assert.Equal(t, "item", root.Name())
	f, ok := root.Attr("file")
	assert.True(t, ok)
	assert.Equal(t, "a.xlsx", f)
	_, ok = root.Attr("scheme")
	assert.False(t, ok)

	opts := root.ChildrenNamed("option")
	require.Len(t, opts, 2)
	assert.Equal(t, "-x", opts[0].Value())
	assert.Equal(t, "", opts[1].Value())
	assert.Len(t, root.ChildrenNamed("scheme"), 1)
}
