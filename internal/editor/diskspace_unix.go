//go:build unix

package editor

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// checkFreeSpace verifies the output filesystem can hold a file roughly the
// size of the input before ffmpeg spends an hour re-encoding it. Edited
// output is about the same size as the input since only interval contents
// change.
func checkFreeSpace(inputPath, outputDir string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	var stat unix.Statfs_t
	if err := unix.Statfs(outputDir, &stat); err != nil {
		// Free space is advisory; an unstatable filesystem should not block
		// the edit, ffmpeg will report the real failure if space runs out.
		return nil
	}
	available := int64(stat.Bavail) * int64(stat.Bsize)
	if available < info.Size() {
		return fmt.Errorf("insufficient disk space in %s: need %d bytes, %d available",
			outputDir, info.Size(), available)
	}
	return nil
}
