package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// clearScreen homes the cursor and clears the terminal before each frame.
const clearScreen = "\x1b[H\x1b[2J"

// castHeader is the first line of an asciicast v2 file.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// CastOptions configures GenerateASCIICast.
type CastOptions struct {
	Title string
	// Timestamp is written to the header when non-zero.
	Timestamp time.Time
	// ShowAnnotations writes frame annotations below the frame content.
	ShowAnnotations bool
}

// GenerateASCIICast writes frames as an asciicast v2 recording. Each frame
// redraws the whole screen once its delay has elapsed.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int, opts CastOptions) error {
	enc := json.NewEncoder(w)

	header := castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Title:   opts.Title,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}
	if !opts.Timestamp.IsZero() {
		header.Timestamp = opts.Timestamp.Unix()
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var elapsed time.Duration
	for i, f := range frames {
		elapsed += f.Delay
		out := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if opts.ShowAnnotations && f.Annotation != "" {
			out += "\r\n\r\n" + f.Annotation
		}
		event := []any{elapsed.Seconds(), "o", out}
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	return nil
}
