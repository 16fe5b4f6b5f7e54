package srt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cue is a single subtitle cue: its file index, display window and text.
type Cue struct {
	Index    int
	FromTime time.Duration
	ToTime   time.Duration
	Text     string
}

var timeFramePattern = regexp.MustCompile(`(\d+):(\d+):(\d+),(\d+) --> (\d+):(\d+):(\d+),(\d+)`)

func getDuration(parts []string) time.Duration {
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	second, _ := strconv.Atoi(parts[2])
	millisecond, _ := strconv.Atoi(parts[3])
	return time.Millisecond*time.Duration(millisecond) +
		time.Second*time.Duration(second) +
		time.Minute*time.Duration(minute) +
		time.Hour*time.Duration(hour)
}

// FormatTimestamp renders a duration in SRT timestamp form (HH:MM:SS,mmm).
// Used by progress lines and diagnostics.
func FormatTimestamp(duration time.Duration) string {
	hour := duration / time.Hour
	duration -= hour * time.Hour
	minute := duration / time.Minute
	duration -= minute * time.Minute
	second := duration / time.Second
	duration -= second * time.Second
	millisecond := duration / time.Millisecond
	return fmt.Sprintf(`%02d:%02d:%02d,%03d`, hour, minute, second, millisecond)
}

// Lines splits the cue text into its display lines.
func (c *Cue) Lines() []string {
	return strings.Split(c.Text, "\n")
}

func cleanText(text string) string { return strings.Trim(text, "\n ") }

func readOne(scanner *bufio.Scanner) (*Cue, error) {
	// Tolerate blank padding between cues.
	line := ""
	for scanner.Scan() {
		line = strings.TrimSpace(scanner.Text())
		if line != "" {
			break
		}
	}
	if line == "" {
		return nil, nil
	}
	idx, err := strconv.Atoi(line)
	if err != nil {
		return nil, fmt.Errorf("invalid cue index %q", line)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("cue %d: missing timing line", idx)
	}
	timing := timeFramePattern.FindStringSubmatch(scanner.Text())
	if timing == nil {
		return nil, fmt.Errorf("cue %d: invalid timing %q", idx, scanner.Text())
	}
	fromTime := getDuration(timing[1:5])
	toTime := getDuration(timing[5:9])
	if toTime < fromTime {
		return nil, fmt.Errorf("cue %d: display window ends before it starts", idx)
	}
	if !scanner.Scan() {
		return nil, fmt.Errorf("cue %d: missing text", idx)
	}
	content := scanner.Text()
	for scanner.Scan() && scanner.Text() != "" {
		content += "\n" + scanner.Text()
	}
	content = cleanText(content)
	if content == "" {
		return nil, fmt.Errorf("cue %d: empty text", idx)
	}
	return &Cue{Index: idx, FromTime: fromTime, ToTime: toTime, Text: content}, nil
}

// ReadAll parses every cue from r in file order. It stops at the first
// malformed cue and reports how many cues were read before it.
func ReadAll(r io.Reader) ([]*Cue, error) {
	scanner := bufio.NewScanner(r)
	var cues []*Cue
	for {
		c, err := readOne(scanner)
		if err != nil {
			return nil, fmt.Errorf("after %d cues: %w", len(cues), err)
		}
		if c == nil {
			break
		}
		cues = append(cues, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cues, nil
}
