package docstore

import (
	"testing"

	docs "google.golang.org/api/docs/v1"
)

func TestDocumentToPlainText(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{
					Paragraph: &docs.Paragraph{
						Elements: []*docs.ParagraphElement{
							{TextRun: &docs.TextRun{Content: "Time (in seconds): 0 to 4.5\n"}},
							{TextRun: &docs.TextRun{Content: "Alice: hello\n\n"}},
						},
					},
				},
			},
		},
	}

	got := documentToPlainText(doc)
	want := "Time (in seconds): 0 to 4.5\nAlice: hello\n\n"
	if got != want {
		t.Errorf("documentToPlainText = %q, want %q", got, want)
	}
}

func TestDocumentToPlainTextTable(t *testing.T) {
	doc := &docs.Document{
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{
					Table: &docs.Table{
						TableRows: []*docs.TableRow{
							{
								TableCells: []*docs.TableCell{
									{
										Content: []*docs.StructuralElement{
											{
												Paragraph: &docs.Paragraph{
													Elements: []*docs.ParagraphElement{
														{TextRun: &docs.TextRun{Content: "cell text\n"}},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	got := documentToPlainText(doc)
	if got != "cell text\n" {
		t.Errorf("documentToPlainText = %q, want %q", got, "cell text\n")
	}
}

func TestDocumentToPlainTextNil(t *testing.T) {
	if got := documentToPlainText(nil); got != "" {
		t.Errorf("documentToPlainText(nil) = %q, want empty", got)
	}
	if got := documentToPlainText(&docs.Document{}); got != "" {
		t.Errorf("documentToPlainText(no body) = %q, want empty", got)
	}
}
