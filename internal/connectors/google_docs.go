package connectors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tarunp72/SMART-SDLC/internal/config"
	"github.com/Tarunp72/SMART-SDLC/internal/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

type GoogleDocsConnector struct {
	newClient func(ctx context.Context) (googleDocsClient, error)
}

type googleDocsClient interface {
	GetDocument(ctx context.Context, documentID string) (*docs.Document, error)
	BatchUpdate(ctx context.Context, documentID string, req *docs.BatchUpdateDocumentRequest) (*docs.BatchUpdateDocumentResponse, error)
}

type googleDocsAPIClient struct {
	service *docs.Service
}

func (c *googleDocsAPIClient) GetDocument(ctx context.Context, documentID string) (*docs.Document, error) {
	return c.service.Documents.Get(documentID).Context(ctx).Do()
}

func (c *googleDocsAPIClient) BatchUpdate(ctx context.Context, documentID string, req *docs.BatchUpdateDocumentRequest) (*docs.BatchUpdateDocumentResponse, error) {
	return c.service.Documents.BatchUpdate(documentID, req).Context(ctx).Do()
}

// NewGoogleDocsConnector needs either a static access token or a service
// account credentials file.
func NewGoogleDocsConnector(cfg config.GoogleDocsConfig) (*GoogleDocsConnector, error) {
	token := strings.TrimSpace(cfg.AccessToken)
	credentialsFile := strings.TrimSpace(cfg.CredentialsFile)
	if token == "" && credentialsFile == "" {
		return nil, errors.New("GOOGLE_DOCS_ACCESS_TOKEN or GOOGLE_APPLICATION_CREDENTIALS is required")
	}

	return &GoogleDocsConnector{
		newClient: func(ctx context.Context) (googleDocsClient, error) {
			return newGoogleDocsAPIClient(ctx, token, credentialsFile)
		},
	}, nil
}

func (g *GoogleDocsConnector) Name() string {
	return "google_docs"
}

func (g *GoogleDocsConnector) ImportDocument(ctx context.Context, req ImportRequest) (domain.Document, error) {
	client, err := g.newClient(ctx)
	if err != nil {
		return domain.Document{}, err
	}

	document, err := client.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return domain.Document{}, mapGoogleDocsError(err)
	}

	title := strings.TrimSpace(document.Title)
	if title == "" {
		title = req.DocumentID
	}

	return domain.Document{
		ID:      req.DocumentID,
		Title:   title,
		Content: documentText(document),
	}, nil
}

// ExportContent writes generated text into the document, either replacing
// the whole body or appending after the existing text.
func (g *GoogleDocsConnector) ExportContent(ctx context.Context, req ExportRequest) error {
	client, err := g.newClient(ctx)
	if err != nil {
		return err
	}

	document, err := client.GetDocument(ctx, req.DocumentID)
	if err != nil {
		return mapGoogleDocsError(err)
	}

	var requests []*docs.Request
	switch req.Mode {
	case ExportAppend:
		requests = appendRequests(document, req.Content)
	default:
		requests = replaceRequests(document, req.Content)
	}

	_, err = client.BatchUpdate(ctx, req.DocumentID, &docs.BatchUpdateDocumentRequest{
		Requests: requests,
	})
	return mapGoogleDocsError(err)
}

func replaceRequests(document *docs.Document, content string) []*docs.Request {
	startIndex, endIndex := editableDocumentRange(document)
	requests := make([]*docs.Request, 0, 2)
	if endIndex > startIndex {
		requests = append(requests, &docs.Request{
			DeleteContentRange: &docs.DeleteContentRangeRequest{
				Range: &docs.Range{StartIndex: startIndex, EndIndex: endIndex},
			},
		})
	}
	return append(requests, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: startIndex},
			Text:     content,
		},
	})
}

func appendRequests(document *docs.Document, content string) []*docs.Request {
	startIndex, endIndex := editableDocumentRange(document)
	text := content
	if endIndex > startIndex {
		text = "\n\n" + content
	}
	return []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
			Text:                 text,
		},
	}}
}

func newGoogleDocsAPIClient(ctx context.Context, token string, credentialsFile string) (googleDocsClient, error) {
	opts := []option.ClientOption{option.WithScopes(docs.DocumentsScope)}
	if token != "" {
		opts = append(opts, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
		})))
	} else {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	service, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &googleDocsAPIClient{service: service}, nil
}

func documentText(document *docs.Document) string {
	if document == nil || document.Body == nil {
		return ""
	}

	var builder strings.Builder
	writeStructuralElements(&builder, document.Body.Content)
	return strings.TrimSpace(builder.String())
}

func writeStructuralElements(builder *strings.Builder, elements []*docs.StructuralElement) {
	for _, element := range elements {
		if element == nil {
			continue
		}

		if paragraph := element.Paragraph; paragraph != nil {
			for _, paragraphElement := range paragraph.Elements {
				if paragraphElement == nil || paragraphElement.TextRun == nil {
					continue
				}
				builder.WriteString(paragraphElement.TextRun.Content)
			}
		}

		if table := element.Table; table != nil {
			for _, row := range table.TableRows {
				if row == nil {
					continue
				}
				for _, cell := range row.TableCells {
					if cell != nil {
						writeStructuralElements(builder, cell.Content)
					}
				}
			}
		}
	}
}

// editableDocumentRange spans the body text, leaving out the trailing
// newline every Google Doc keeps.
func editableDocumentRange(document *docs.Document) (startIndex int64, endIndex int64) {
	startIndex, endIndex = 1, 1
	if document == nil || document.Body == nil {
		return startIndex, endIndex
	}

	for _, element := range document.Body.Content {
		if element != nil && element.EndIndex > endIndex {
			endIndex = element.EndIndex
		}
	}
	if endIndex > 1 {
		endIndex--
	}
	return startIndex, max(endIndex, startIndex)
}

func mapGoogleDocsError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == 401:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case apiErr.Code == 403:
		return fmt.Errorf("%w: %v", ErrForbidden, err)
	case apiErr.Code == 404:
		return fmt.Errorf("%w: %v", ErrDocumentNotFound, err)
	case apiErr.Code == 429 || apiErr.Code >= 500:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
