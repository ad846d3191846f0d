// Package export renders report rows into downloadable documents.
package export

import "errors"

// Content types of the documents.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DefaultSheetName is used for workbooks when no sheet name is given.
const DefaultSheetName = "Yearly Report"

// ErrInvalidDocument is returned when a document cannot be read back.
var ErrInvalidDocument = errors.New("the document is not a valid report")

// Document is a rendered report together with the metadata needed to
// send it as a download.
type Document struct {
	Body        []byte
	Filename    string
	ContentType string
}
