package transcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// windowSize is how many bytes from each end of the file feed the hash.
// Hashing multi-gigabyte inputs end to end would take longer than the lookup
// saves; size plus head and tail windows distinguishes real-world media files.
const windowSize = 64 * 1024

// Fingerprint computes a deterministic identity for a media file from its
// size and the hashes of its first and last 64 KiB.
func Fingerprint(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for fingerprint: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat for fingerprint: %w", err)
	}

	hasher := sha256.New()
	fmt.Fprintf(hasher, "size:%d\n", info.Size())

	if _, err := io.CopyN(hasher, file, windowSize); err != nil && err != io.EOF {
		return "", fmt.Errorf("hash head window: %w", err)
	}
	if info.Size() > windowSize {
		offset := info.Size() - windowSize
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek tail window: %w", err)
		}
		if _, err := io.Copy(hasher, file); err != nil {
			return "", fmt.Errorf("hash tail window: %w", err)
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
