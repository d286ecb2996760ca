package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/godilite/bonus-report/internal/service"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "csv"}

// Write renders rep in format.
func Write(w io.Writer, format string, rep service.Report, top int) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return WriteText(w, rep, top)
	case "json":
		return WriteJSON(w, rep, top)
	case "csv":
		return WriteCSV(w, rep, top)
	}
	return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
}
