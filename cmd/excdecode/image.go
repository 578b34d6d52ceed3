package main

import (
	"fmt"
	"io"
	"os"

	"github.com/diskfs/go-diskfs"
)

// readImage returns the contents of the file at path in the filesystem on
// partition part of the disk image. Partition 0 is a filesystem spanning the
// whole image.
func readImage(image string, part int, path string) ([]byte, error) {
	disk, err := diskfs.Open(image)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	fs, err := disk.GetFilesystem(part)
	if err != nil {
		return nil, fmt.Errorf("partition %d: %w", part, err)
	}
	f, err := fs.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}
