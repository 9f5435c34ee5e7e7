package display

import (
	"fmt"
	"io"
	"strings"
)

const banner = `__  ___ __ ___  ___  ___ ___  _ ____   __
\ \/ / '__/ _ \/ __|/ __/ _ \| '_ \ \ / /
 >  <| | |  __/\__ \ (_| (_) | | | \ V /
/_/\_\_|  \___||___/\___\___/|_| |_|\_/`

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w, BannerStyle.Render(banner))
	if version = strings.TrimSpace(version); version != "" {
		fmt.Fprintln(w, InfoStyle.Render("xresconv "+version))
	}
}
