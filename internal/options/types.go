package options

import "strings"

// Converter flags emitted for the scalar options and scheme selectors.
const (
	FlagProto       = "-p"
	FlagOutputType  = "-t"
	FlagProtoFile   = "-f"
	FlagOutputDir   = "-o"
	FlagDataSrcDir  = "-d"
	FlagRename      = "-n"
	FlagDataVersion = "-a"
	FlagSchemeFile  = "-s"
	FlagScheme      = "-m"
)

// Defaults applied before any <global> block is folded.
const (
	DefaultWorkDir       = "."
	DefaultConverterPath = "xresloader.jar"
)

// ArgMap is a flag -> value mapping that remembers insertion order. Setting
// an existing flag replaces its value in place. The zero value is ready to use.
type ArgMap struct {
	keys   []string
	values map[string]string
}

// Set assigns value to flag, appending flag to the order if it is new.
func (m *ArgMap) Set(flag, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[flag]; !ok {
		m.keys = append(m.keys, flag)
	}
	m.values[flag] = value
}

// Get returns the value for flag.
func (m ArgMap) Get(flag string) (string, bool) {
	v, ok := m.values[flag]
	return v, ok
}

// Keys returns the flags in insertion order.
func (m ArgMap) Keys() []string { return append([]string(nil), m.keys...) }

// Len returns the number of flags.
func (m ArgMap) Len() int { return len(m.keys) }

// Clone returns an independent copy.
func (m ArgMap) Clone() ArgMap {
	c := ArgMap{keys: append([]string(nil), m.keys...), values: make(map[string]string, len(m.values))}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Flatten returns flag/value pairs in insertion order.
func (m ArgMap) Flatten() []string {
	out := make([]string, 0, 2*len(m.keys))
	for _, k := range m.keys {
		out = append(out, k, m.values[k])
	}
	return out
}

// SchemeMap maps a scheme key to its ordered values, remembering the order in
// which keys were first declared. The zero value is ready to use.
type SchemeMap struct {
	keys   []string
	values map[string][]string
}

// Append adds value to key.
func (m *SchemeMap) Append(key, value string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = append(m.values[key], value)
}

// Has reports whether key was declared.
func (m SchemeMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Get returns the values declared for key.
func (m SchemeMap) Get(key string) []string { return m.values[key] }

// Keys returns the keys in declaration order.
func (m SchemeMap) Keys() []string { return append([]string(nil), m.keys...) }

// Len returns the number of keys.
func (m SchemeMap) Len() int { return len(m.keys) }

// Clone returns an independent copy.
func (m SchemeMap) Clone() SchemeMap {
	var c SchemeMap
	for _, k := range m.keys {
		for _, v := range m.values[k] {
			c.Append(k, v)
		}
	}
	return c
}

// TokenSet is a whitespace-delimited set of tags or classes, kept in
// declaration order without duplicates.
type TokenSet []string

// ParseTokens splits s on whitespace into a TokenSet.
func ParseTokens(s string) TokenSet {
	var out TokenSet
	seen := make(map[string]bool)
	for _, f := range strings.Fields(s) {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// Intersects reports whether s and other share at least one token.
func (s TokenSet) Intersects(other TokenSet) bool {
	for _, a := range s {
		for _, b := range other {
			if a == b {
				return true
			}
		}
	}
	return false
}

// String joins the tokens with single spaces.
func (s TokenSet) String() string { return strings.Join(s, " ") }

// OutputRule is one output variant. Empty Type or Rename leave the global
// value untouched; non-empty Tags or Classes restrict the rule to items that
// share at least one token.
type OutputRule struct {
	Type    string
	Rename  string
	Tags    TokenSet
	Classes TokenSet
}

// GlobalConfig is the merged result of every <global> block. It is built by
// Merge and treated as read-only afterwards.
type GlobalConfig struct {
	WorkDir       string
	ConverterPath string
	DataVersion   *string

	ScalarArgs    ArgMap
	ExtraArgsPre  []string // <option> tokens, placed after the scalar flags
	ExtraArgsPost []string // passthrough arguments from the command line
	JavaOptions   []string

	DefaultSchemes SchemeMap

	// OutputMatrix only ever holds rules from MatrixSource.
	OutputMatrix []OutputRule
	MatrixSource string
}

// BatchSize is the number of jobs a worker pops at once: one per output
// rule, so the variants of an item stay adjacent on the converter's stdin.
func (g GlobalConfig) BatchSize() int {
	if n := len(g.OutputMatrix); n > 1 {
		return n
	}
	return 1
}
