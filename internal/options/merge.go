// Package options folds the <global> blocks of a descriptor into one
// GlobalConfig and turns <item> blocks into ConvItems.
package options

import (
	"fmt"
	"strings"

	"github.com/backmassage/xresconv/internal/argv"
	"github.com/backmassage/xresconv/internal/descriptor"
)

// GlobalTag is a recognized child element of <global>.
type GlobalTag string

const (
	TagWorkDir       GlobalTag = "work_dir"
	TagConverterPath GlobalTag = "xresloader_path"
	TagProto         GlobalTag = "proto"
	TagOutputType    GlobalTag = "output_type"
	TagProtoFile     GlobalTag = "proto_file"
	TagOutputDir     GlobalTag = "output_dir"
	TagDataSrcDir    GlobalTag = "data_src_dir"
	TagDataVersion   GlobalTag = "data_version"
	TagRename        GlobalTag = "rename"
	TagOption        GlobalTag = "option"
	TagJavaOption    GlobalTag = "java_option"
	TagDefaultScheme GlobalTag = "default_scheme"
)

// Overrides carries command-line values that take part in the merge.
type Overrides struct {
	// DataVersion, when non-nil, beats every <data_version> block.
	DataVersion *string
	// Passthrough is appended verbatim after everything else on each job.
	Passthrough []string
}

// Warning is a non-fatal problem found while merging.
type Warning struct {
	File string
	Tag  string
	Msg  string
}

func (w Warning) String() string {
	if w.Tag == "" {
		return fmt.Sprintf("%s: %s", w.File, w.Msg)
	}
	return fmt.Sprintf("%s: <%s>: %s", w.File, w.Tag, w.Msg)
}

type merger struct {
	cfg      GlobalConfig
	warnings []Warning

	// load is the descriptor load of the block being merged; matrixLoad is
	// the load the current output matrix came from.
	load       int
	matrixLoad int
}

func (m *merger) warn(file, tag, format string, args ...any) {
	m.warnings = append(m.warnings, Warning{File: file, Tag: tag, Msg: fmt.Sprintf(format, args...)})
}

type tagHandler func(m *merger, file string, el descriptor.Element, value string)

func scalar(flag string) tagHandler {
	return func(m *merger, _ string, _ descriptor.Element, value string) {
		m.cfg.ScalarArgs.Set(flag, value)
	}
}

var globalHandlers = map[GlobalTag]tagHandler{
	TagWorkDir: func(m *merger, _ string, _ descriptor.Element, v string) {
		m.cfg.WorkDir = v
	},
	TagConverterPath: func(m *merger, _ string, _ descriptor.Element, v string) {
		m.cfg.ConverterPath = v
	},
	TagProto:      scalar(FlagProto),
	TagOutputType: mergeOutputType,
	TagProtoFile:  scalar(FlagProtoFile),
	TagOutputDir:  scalar(FlagOutputDir),
	TagDataSrcDir: scalar(FlagDataSrcDir),
	TagDataVersion: func(m *merger, _ string, _ descriptor.Element, v string) {
		if m.cfg.DataVersion == nil {
			m.cfg.DataVersion = &v
		}
	},
	TagRename: scalar(FlagRename),
	TagOption: func(m *merger, file string, _ descriptor.Element, v string) {
		toks, err := argv.Tokenize(v)
		if err != nil {
			m.warn(file, string(TagOption), "ignored: %v", err)
			return
		}
		m.cfg.ExtraArgsPre = append(m.cfg.ExtraArgsPre, toks...)
	},
	TagJavaOption: func(m *merger, _ string, _ descriptor.Element, v string) {
		m.cfg.JavaOptions = append(m.cfg.JavaOptions, v)
	},
	TagDefaultScheme: func(m *merger, file string, el descriptor.Element, v string) {
		name, _ := el.Attr("name")
		name = strings.TrimSpace(name)
		if name == "" {
			m.warn(file, string(TagDefaultScheme), "missing name attribute")
			return
		}
		m.cfg.DefaultSchemes.Append(name, v)
	},
}

func mergeOutputType(m *merger, file string, el descriptor.Element, v string) {
	if m.cfg.MatrixSource != file || m.matrixLoad != m.load {
		m.cfg.OutputMatrix = nil
		m.cfg.MatrixSource = file
		m.matrixLoad = m.load
	}
	rule := OutputRule{Type: v}
	if rename, ok := el.Attr("rename"); ok {
		rule.Rename = strings.TrimSpace(rename)
	}
	if tags, ok := el.Attr("tag"); ok {
		rule.Tags = ParseTokens(tags)
	}
	if classes, ok := el.Attr("class"); ok {
		rule.Classes = ParseTokens(classes)
	}
	m.cfg.OutputMatrix = append(m.cfg.OutputMatrix, rule)
}

// Merge folds globals in order. Most tags are last-wins; data_version is
// first-wins and loses to ov.DataVersion. output_type rules accumulate into
// the output matrix, which is reset whenever a rule comes from a different
// file load than the rules already collected, so an including file's matrix
// replaces the one inherited from its includes and a file included twice
// contributes its rules once. Empty values are ignored, whatever the tag.
func Merge(globals []descriptor.ConfigNode, ov Overrides) (GlobalConfig, []Warning) {
	m := &merger{cfg: GlobalConfig{
		WorkDir:       DefaultWorkDir,
		ConverterPath: DefaultConverterPath,
	}, matrixLoad: -1}
	if ov.DataVersion != nil {
		v := *ov.DataVersion
		m.cfg.DataVersion = &v
	}

	for _, block := range globals {
		m.load = block.Load
		for _, child := range block.Element.Children {
			v := child.Value()
			if v == "" {
				continue
			}
			tag := strings.ToLower(child.Name())
			h, ok := globalHandlers[GlobalTag(tag)]
			if !ok {
				m.warn(block.SourceFile, tag, "unknown global option")
				continue
			}
			h(m, block.SourceFile, child, v)
		}
	}

	if m.cfg.DataVersion != nil {
		m.cfg.ScalarArgs.Set(FlagDataVersion, *m.cfg.DataVersion)
	}
	m.cfg.ExtraArgsPost = append([]string(nil), ov.Passthrough...)
	return m.cfg, m.warnings
}
