// Package export renders the full, sorted status-code list into
// downloadable documents.
package export

import (
	"errors"
	"io"

	"github.com/vk/codeapi/internal/catalog"
)

// ErrExportDisabled is returned when an export is requested while the
// exportable option is off.
var ErrExportDisabled = errors.New("export is disabled, enable \"exportable\" first")

// Exporter writes a list of codes in one document format.
type Exporter interface {
	// Extension is the file extension of produced documents, without dot.
	Extension() string
	// Export writes codes to w. Codes are expected in ascending order.
	Export(w io.Writer, title string, codes []catalog.Code) error
}

// Guard rejects an export when it is not enabled.
func Guard(enabled bool) error {
	if !enabled {
		return ErrExportDisabled
	}
	return nil
}

// FileName returns the download file name for a document titled title.
func FileName(e Exporter, title string) string {
	return title + "." + e.Extension()
}
