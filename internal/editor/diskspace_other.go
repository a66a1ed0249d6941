//go:build !unix

package editor

func checkFreeSpace(inputPath, outputDir string) error {
	return nil
}
