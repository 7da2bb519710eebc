package docstore

import (
	"strings"

	docs "google.golang.org/api/docs/v1"
)

// documentToPlainText extracts the plain text of a Google Doc body.
// Transcript documents are flat text, but tables are walked too so briefs
// with tabular sections lose nothing.
func documentToPlainText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}

	var text strings.Builder
	for _, element := range doc.Body.Content {
		writeStructuralElement(&text, element)
	}
	return text.String()
}

func writeStructuralElement(text *strings.Builder, element *docs.StructuralElement) {
	if element == nil {
		return
	}

	if element.Paragraph != nil {
		for _, pe := range element.Paragraph.Elements {
			if pe.TextRun != nil {
				text.WriteString(pe.TextRun.Content)
			}
		}
	}

	if element.Table != nil {
		for _, row := range element.Table.TableRows {
			for _, cell := range row.TableCells {
				for _, cellElement := range cell.Content {
					writeStructuralElement(text, cellElement)
				}
			}
		}
	}
}
