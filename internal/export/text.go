package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vk/codeapi/internal/catalog"
	"github.com/vk/codeapi/internal/textutil"
)

// TextExporter renders codes as a plain-text table:
//
//	-------------------
//	 200 : Request OK
//	-------------------
//	 404 : Not found
//	-------------------
//
// The number column is right aligned to the widest number plus one, and
// separators span the widest message measured with textutil.TextWidth.
type TextExporter struct{}

// Extension implements Exporter.
func (TextExporter) Extension() string { return "txt" }

// Export implements Exporter. An empty list produces an empty document.
func (TextExporter) Export(w io.Writer, _ string, codes []catalog.Code) error {
	if len(codes) == 0 {
		return nil
	}

	maxNumber, width := codes[0].Number, 0
	for _, c := range codes {
		maxNumber = max(maxNumber, c.Number)
		width = max(width, textutil.TextWidth(c.Message))
	}
	numWidth := textutil.NumLength(maxNumber) + 1
	line := strings.Repeat("-", numWidth+4+width)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, line)
	for _, c := range codes {
		fmt.Fprintf(bw, "%*d : %s\n", numWidth, c.Number, c.Message)
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}
