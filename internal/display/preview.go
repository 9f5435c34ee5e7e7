package display

import (
	"fmt"
	"strings"
)

// PreviewBlock renders one worker's dry-run output: the converter command
// line, then each job it would have received, prefixed "\t>".
func PreviewBlock(command string, jobs []string) string {
	var b strings.Builder
	b.WriteString(CommandStyle.Render(command))
	b.WriteByte('\n')
	for _, j := range jobs {
		b.WriteString("\t>")
		b.WriteString(JobStyle.Render(j))
		b.WriteByte('\n')
	}
	return b.String()
}

// Summary is the closing line of a run.
func Summary(failed int) string {
	msg := fmt.Sprintf("all jobs done. %d job(s) failed.", failed)
	if failed > 0 {
		return ErrorStyle.Render(msg)
	}
	return SuccessStyle.Render(msg)
}
