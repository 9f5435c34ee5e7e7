package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/xresconv/internal/options"
)

func TestPlural(t *testing.T) {
	assert.Equal(t, "0 jobs", Plural(0, "job"))
	assert.Equal(t, "1 job", Plural(1, "job"))
	assert.Equal(t, "12 workers", Plural(12, "worker"))
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"sub-second", 1234567 * time.Microsecond, "1.2s"},
		{"milliseconds", 345678 * time.Microsecond, "346ms"},
		{"minutes", 83*time.Second + 600*time.Millisecond, "1m24s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatElapsed(tt.d))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "a long ...", Truncate("a long string here", 10))
	assert.Equal(t, "转换...", Truncate("转换完成了吗", 5))
	assert.Equal(t, "..", Truncate("abcdef", 2))
}

func TestPreviewBlock(t *testing.T) {
	got := PreviewBlock("java -jar x.jar --stdin", []string{"-s a.xlsx -m s1", "-s b.xlsx -m s2"})
	assert.Equal(t, "java -jar x.jar --stdin\n\t>-s a.xlsx -m s1\n\t>-s b.xlsx -m s2\n", got)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "all jobs done. 0 job(s) failed.", Summary(0))
	assert.Equal(t, "all jobs done. 3 job(s) failed.", Summary(3))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.0")
	assert.Contains(t, buf.String(), "xresconv v1.2.0")
	assert.Contains(t, buf.String(), `\_/`)
}

func TestConfigTree(t *testing.T) {
	v := "1.0.0"
	g := options.GlobalConfig{
		WorkDir:       "../data",
		ConverterPath: "xresloader.jar",
		DataVersion:   &v,
		ExtraArgsPre:  []string{"--pretty", "2"},
		JavaOptions:   []string{"-Xmx1g"},
		OutputMatrix: []options.OutputRule{
			{Type: "json", Tags: options.TokenSet{"client"}},
			{Rename: "x.bin"},
		},
		MatrixSource: "list.xml",
	}
	g.ScalarArgs.Set(options.FlagProto, "protobuf")
	g.DefaultSchemes.Append("KeyRow", "2")

	items := []options.ConvItem{
		{File: "a.xlsx", Scheme: "s1", Enabled: true, Tags: options.TokenSet{"client"}},
		{File: "b.xlsx", Scheme: "s2"},
	}
	out := ConfigTree("list.xml", g, items).String()

	for _, want := range []string{
		"list.xml", "work_dir", "../data", "data_version", "-p", "protobuf",
		"--pretty 2", "-Xmx1g", "KeyRow", "#0", "json", "tag=client", "#1",
		"(global)", "rename=x.bin", "(1/2 enabled)", "a.xlsx:s1", "b.xlsx:s2 (disabled)",
		"(1 flag)", "(1 key)", "(2 rules)",
	} {
		assert.Contains(t, out, want)
	}
}

func TestConfigTreeTruncatesLongOptions(t *testing.T) {
	long := strings.Repeat("--flag ", 20)
	items := []options.ConvItem{
		{File: "a.xlsx", Enabled: true, LocalOptions: strings.Fields(long)},
	}
	out := ConfigTree("list.xml", options.GlobalConfig{}, items).String()

	assert.Contains(t, out, Truncate(strings.TrimSpace(long), optionWidth))
	assert.NotContains(t, out, strings.TrimSpace(long))
	assert.Contains(t, out, "(0 rules)")
}
