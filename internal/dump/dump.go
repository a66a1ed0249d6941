package dump

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"scrub/internal/segment"
	"scrub/internal/services"
	"scrub/internal/transcribe"
)

// linePattern matches one dumped word entry:
// [HH:MM:SS] (Start: 12.00, End: 12.40) heck
var linePattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \(Start: ([\d.]+), End: ([\d.]+)\) (.*)$`)

// Write saves the full timestamped transcription to a text file. The format
// is line-oriented so the file can be searched in any editor and parsed back
// by Parse without re-running the model.
func Write(transcript transcribe.Transcript, mediaName, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dump file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Full Transcription for: %s\n", mediaName)
	fmt.Fprintf(writer, "%s\n\n", strings.Repeat("=", 40))

	if transcript.Empty() {
		fmt.Fprint(writer, "No words were transcribed from this audio file.")
	} else {
		for _, word := range transcript.Words {
			fmt.Fprintf(writer, "[%s] (Start: %.2f, End: %.2f) %s\n",
				segment.FormatHMS(word.Start), word.Start, word.End, strings.TrimSpace(word.Text))
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush dump file: %w", err)
	}
	return file.Close()
}

// Parse reads a dump file back into a Transcript. Header and blank lines are
// skipped; a file yielding no word entries is an error since matching
// against an empty transcript would silently find nothing.
func Parse(path string) (transcribe.Transcript, error) {
	var transcript transcribe.Transcript

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return transcript, services.Wrap(services.ErrInputNotFound, "dump", "parse", path, nil)
		}
		return transcript, fmt.Errorf("open dump file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		match := linePattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		start, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return transcript, services.Wrap(services.ErrAnalysis, "dump", "parse", fmt.Sprintf("start %q", match[1]), err)
		}
		end, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return transcript, services.Wrap(services.ErrAnalysis, "dump", "parse", fmt.Sprintf("end %q", match[2]), err)
		}
		transcript.Words = append(transcript.Words, transcribe.Word{
			Text:  strings.TrimSpace(match[3]),
			Start: start,
			End:   end,
		})
	}
	if err := scanner.Err(); err != nil {
		return transcript, fmt.Errorf("scan dump file: %w", err)
	}
	if transcript.Empty() {
		return transcript, services.Wrap(services.ErrAnalysis, "dump", "parse", "no word entries found in "+path, nil)
	}
	return transcript, nil
}
