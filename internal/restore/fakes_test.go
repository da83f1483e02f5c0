package restore

import (
	"strings"

	"github.com/raoulx24/snap-restore/internal/fs"
)

// devFS stats through the real filesystem but overrides the device id per
// path prefix, simulating mounts that tests cannot actually create.
type devFS struct {
	fs.OSFS
	dev map[string]uint64
}

func (d *devFS) Stat(path string) (fs.FileInfo, error) {
	info, err := d.OSFS.Stat(path)
	if err != nil {
		return info, err
	}
	best := -1
	for prefix, dev := range d.dev {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			if len(prefix) > best {
				best = len(prefix)
				info.Dev = dev
			}
		}
	}
	return info, nil
}
