package restore

import (
	"bufio"
	"os"
	"strings"

	"github.com/raoulx24/snap-restore/internal/types"
)

// ReadFileList parses a batch file, one requested path per line. Blank lines
// and #-prefixed comments are ignored. An unreadable list is a configuration
// error: the run aborts before any request is processed.
func ReadFileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.NewConfigError("file-list", "cannot read file list", err)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, types.NewConfigError("file-list", "reading file list", err)
	}

	return paths, nil
}
