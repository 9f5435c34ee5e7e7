package converter

import (
	"strings"

	"github.com/backmassage/xresconv/internal/argv"
)

// DefaultJava is the java executable looked up on PATH.
const DefaultJava = "java"

// EncodingOptions pin the converter's file and console encodings so drains
// can always decode UTF-8. JDK 19+ takes System.out and System.err from
// stdout.encoding and stderr.encoding, not file.encoding.
var EncodingOptions = []string{
	"-Dfile.encoding=UTF-8",
	"-Dstdout.encoding=UTF-8",
	"-Dstderr.encoding=UTF-8",
}

// Spec describes how converter processes are started.
type Spec struct {
	Java string
	// CLIOptions are the -j values from the command line. A leading "-" is
	// added when missing, so "Xmx2g" becomes "-Xmx2g".
	CLIOptions []string
	// JavaOptions are the <java_option> values, passed verbatim.
	JavaOptions []string
	Converter   string
	Dir         string
}

// Args returns the full argument vector, executable first:
//
//	java <cli options> <java_option...> <encoding options> -jar <converter> --stdin
func (s Spec) Args() []string {
	java := s.Java
	if java == "" {
		java = DefaultJava
	}
	args := make([]string, 0, 4+len(EncodingOptions)+len(s.CLIOptions)+len(s.JavaOptions))
	args = append(args, java)
	for _, o := range s.CLIOptions {
		if !strings.HasPrefix(o, "-") {
			o = "-" + o
		}
		args = append(args, o)
	}
	args = append(args, s.JavaOptions...)
	args = append(args, EncodingOptions...)
	args = append(args, "-jar", s.Converter, "--stdin")
	return args
}

// String renders the command line for previews and logs.
func (s Spec) String() string { return argv.Join(s.Args()) }
