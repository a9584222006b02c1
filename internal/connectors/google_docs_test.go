package connectors

import (
	"context"
	"errors"
	"testing"

	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
)

type fakeGoogleDocsClient struct {
	document     *docs.Document
	getErr       error
	batchErr     error
	lastExportID string
	lastBatchReq *docs.BatchUpdateDocumentRequest
}

func (f *fakeGoogleDocsClient) GetDocument(_ context.Context, _ string) (*docs.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.document, nil
}

func (f *fakeGoogleDocsClient) BatchUpdate(_ context.Context, documentID string, req *docs.BatchUpdateDocumentRequest) (*docs.BatchUpdateDocumentResponse, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	f.lastExportID = documentID
	f.lastBatchReq = req
	return &docs.BatchUpdateDocumentResponse{}, nil
}

func connectorWith(client googleDocsClient) *GoogleDocsConnector {
	return &GoogleDocsConnector{
		newClient: func(_ context.Context) (googleDocsClient, error) {
			return client, nil
		},
	}
}

func requirementsDoc() *docs.Document {
	return &docs.Document{
		Title: "Checkout SRS",
		Body: &docs.Body{
			Content: []*docs.StructuralElement{
				{
					EndIndex: 1,
				},
				{
					EndIndex: 35,
					Paragraph: &docs.Paragraph{
						Elements: []*docs.ParagraphElement{
							{TextRun: &docs.TextRun{Content: "Users can pay "}},
							{TextRun: &docs.TextRun{Content: "by card.\n"}},
						},
					},
				},
				{
					Table: &docs.Table{
						TableRows: []*docs.TableRow{{
							TableCells: []*docs.TableCell{{
								Content: []*docs.StructuralElement{{
									Paragraph: &docs.Paragraph{
										Elements: []*docs.ParagraphElement{
											{TextRun: &docs.TextRun{Content: "Latency under 200ms\n"}},
										},
									},
								}},
							}},
						}},
					},
				},
			},
		},
	}
}

func TestGoogleDocsImportDocument(t *testing.T) {
	connector := connectorWith(&fakeGoogleDocsClient{document: requirementsDoc()})

	document, err := connector.ImportDocument(context.Background(), ImportRequest{DocumentID: "doc-1"})
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}

	expected := domain.Document{
		ID:      "doc-1",
		Title:   "Checkout SRS",
		Content: "Users can pay by card.\nLatency under 200ms",
	}
	if document != expected {
		t.Fatalf("unexpected document: %+v", document)
	}
}

func TestGoogleDocsImportUsesIDWhenUntitled(t *testing.T) {
	connector := connectorWith(&fakeGoogleDocsClient{document: &docs.Document{}})

	document, err := connector.ImportDocument(context.Background(), ImportRequest{DocumentID: "doc-7"})
	if err != nil {
		t.Fatalf("import returned error: %v", err)
	}
	if document.Title != "doc-7" {
		t.Fatalf("expected id as title, got %q", document.Title)
	}
}

func TestGoogleDocsImportUnavailable(t *testing.T) {
	connector := &GoogleDocsConnector{
		newClient: func(_ context.Context) (googleDocsClient, error) {
			return nil, ErrUnavailable
		},
	}

	_, err := connector.ImportDocument(context.Background(), ImportRequest{DocumentID: "doc-1"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGoogleDocsImportMapsAPIErrors(t *testing.T) {
	cases := map[int]error{
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrDocumentNotFound,
		429: ErrUnavailable,
		503: ErrUnavailable,
	}
	for code, want := range cases {
		connector := connectorWith(&fakeGoogleDocsClient{getErr: &googleapi.Error{Code: code}})
		_, err := connector.ImportDocument(context.Background(), ImportRequest{DocumentID: "doc-1"})
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v, got %v", code, want, err)
		}
	}
}

func TestGoogleDocsExportReplacesBody(t *testing.T) {
	client := &fakeGoogleDocsClient{document: requirementsDoc()}

	err := connectorWith(client).ExportContent(context.Background(), ExportRequest{
		DocumentID: "doc-42",
		Content:    "## Design\nThree services.",
		Mode:       ExportReplace,
	})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}

	if client.lastExportID != "doc-42" {
		t.Fatalf("expected export id doc-42, got %q", client.lastExportID)
	}
	if len(client.lastBatchReq.Requests) != 2 {
		t.Fatalf("expected 2 batch requests, got %d", len(client.lastBatchReq.Requests))
	}

	deleteReq := client.lastBatchReq.Requests[0].DeleteContentRange
	if deleteReq == nil || deleteReq.Range.StartIndex != 1 || deleteReq.Range.EndIndex != 34 {
		t.Fatalf("unexpected delete request: %+v", deleteReq)
	}

	insertReq := client.lastBatchReq.Requests[1].InsertText
	if insertReq == nil || insertReq.Location.Index != 1 || insertReq.Text != "## Design\nThree services." {
		t.Fatalf("unexpected insert request: %+v", insertReq)
	}
}

func TestGoogleDocsExportReplaceEmptyDoc(t *testing.T) {
	client := &fakeGoogleDocsClient{document: &docs.Document{Body: &docs.Body{}}}

	err := connectorWith(client).ExportContent(context.Background(), ExportRequest{
		DocumentID: "doc-100",
		Content:    "New content",
	})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}
	if len(client.lastBatchReq.Requests) != 1 || client.lastBatchReq.Requests[0].InsertText == nil {
		t.Fatalf("expected a single insert request for empty doc, got %+v", client.lastBatchReq.Requests)
	}
}

func TestGoogleDocsExportAppendsAfterExistingText(t *testing.T) {
	client := &fakeGoogleDocsClient{document: requirementsDoc()}

	err := connectorWith(client).ExportContent(context.Background(), ExportRequest{
		DocumentID: "doc-42",
		Content:    "def test_pay(): ...",
		Mode:       ExportAppend,
	})
	if err != nil {
		t.Fatalf("export returned error: %v", err)
	}

	if len(client.lastBatchReq.Requests) != 1 {
		t.Fatalf("expected 1 append request, got %d", len(client.lastBatchReq.Requests))
	}
	insertReq := client.lastBatchReq.Requests[0].InsertText
	if insertReq == nil || insertReq.EndOfSegmentLocation == nil {
		t.Fatalf("expected insert at end of segment, got %+v", insertReq)
	}
	if insertReq.Text != "\n\ndef test_pay(): ..." {
		t.Fatalf("expected separated appended text, got %q", insertReq.Text)
	}
}

func TestGoogleDocsExportBatchFailure(t *testing.T) {
	client := &fakeGoogleDocsClient{
		document: &docs.Document{Body: &docs.Body{}},
		batchErr: &googleapi.Error{Code: 403},
	}

	err := connectorWith(client).ExportContent(context.Background(), ExportRequest{DocumentID: "doc-1", Content: "x"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
