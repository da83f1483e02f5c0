package cli

import (
	"fmt"
	"io"
)

// PrintHelp writes the usage text; main calls it for --help.
func PrintHelp(w io.Writer, name string) {
	printHelp(w, name)
}

func printHelp(w io.Writer, name string) {
	fmt.Fprintf(w, `Usage: %s [options] [file ...]

Restore files from a point-in-time snapshot, either at their original path
or, when the path no longer matches, by searching the snapshot tree for the
filename. Existing destination files are never overwritten.

Options:
  -s, --snapshot-dir DIR   directory holding the snapshot instances
  -d, --date ID            snapshot identifier (subdirectory name)
  -m, --mount DIR          re-root restored files under DIR
  -S, --search-path PATH   search root inside the snapshot instance
  -f, --file-list FILE     batch file, one path per line (#-comments ignored)
  -a, --auto-detect        scan mounted filesystems for snapshot roots
  -p, --parallel N         concurrent deep-search walkers (default 4)
  -D, --max-depth N        shallow search depth limit (default 3)
  -l, --link               hard-link instead of copy (same filesystem only)
  -r, --dry-run            report actions without touching the filesystem
  -c, --config FILE        configuration file
  -L, --log-dir DIR        directory for run summary logs
  -v, --verbose            enable debug output
  -h, --help               show this message

Paths may be absolute, relative to the snapshot's parent filesystem, or bare
filenames. When the identifier is omitted and the terminal is interactive, a
selection menu is shown.
`, name)
}
