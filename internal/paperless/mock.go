package paperless

import (
	"context"

	"github.com/Veraticus/asnreport/internal/grouping"
	"github.com/Veraticus/asnreport/internal/model"
)

// MockClient is a mock implementation of DocumentSource for testing.
type MockClient struct {
	// Functions that can be set by tests to control behavior
	FetchCustomFieldFn    func(ctx context.Context, id int) (*model.CustomField, error)
	FetchCorrespondentsFn func(ctx context.Context) ([]model.Correspondent, error)
	FetchDocumentsFn      func(ctx context.Context, asnFrom, asnTo int) (*DocumentSet, error)

	// Call tracking, in call order
	Calls []string

	FetchCustomFieldIDs []int
	FetchDocumentsCalls []FetchDocumentsCall
}

// FetchDocumentsCall records the parameters of a FetchDocuments call.
type FetchDocumentsCall struct {
	ASNFrom int
	ASNTo   int
}

// NewMockClient creates a new mock Paperless client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// FetchCustomField implements DocumentSource.FetchCustomField.
func (m *MockClient) FetchCustomField(ctx context.Context, id int) (*model.CustomField, error) {
	m.Calls = append(m.Calls, "FetchCustomField")
	m.FetchCustomFieldIDs = append(m.FetchCustomFieldIDs, id)

	if m.FetchCustomFieldFn != nil {
		return m.FetchCustomFieldFn(ctx, id)
	}

	// Default behavior: a select field without options
	return &model.CustomField{ID: id, Name: "Field", DataType: "select"}, nil
}

// FetchCorrespondents implements DocumentSource.FetchCorrespondents.
func (m *MockClient) FetchCorrespondents(ctx context.Context) ([]model.Correspondent, error) {
	m.Calls = append(m.Calls, "FetchCorrespondents")

	if m.FetchCorrespondentsFn != nil {
		return m.FetchCorrespondentsFn(ctx)
	}

	return []model.Correspondent{}, nil
}

// FetchDocuments implements DocumentSource.FetchDocuments.
func (m *MockClient) FetchDocuments(ctx context.Context, asnFrom, asnTo int) (*DocumentSet, error) {
	m.Calls = append(m.Calls, "FetchDocuments")
	m.FetchDocumentsCalls = append(m.FetchDocumentsCalls, FetchDocumentsCall{ASNFrom: asnFrom, ASNTo: asnTo})

	if m.FetchDocumentsFn != nil {
		return m.FetchDocumentsFn(ctx, asnFrom, asnTo)
	}

	return &DocumentSet{Documents: []model.Document{}, MinASN: asnFrom, MaxASN: asnTo}, nil
}

// DocumentsFn returns a FetchDocumentsFn that serves docs with bounds
// computed the way the real client computes them.
func DocumentsFn(docs []model.Document) func(ctx context.Context, asnFrom, asnTo int) (*DocumentSet, error) {
	return func(_ context.Context, asnFrom, asnTo int) (*DocumentSet, error) {
		minASN, maxASN := grouping.Bounds(docs, asnFrom, asnTo)
		return &DocumentSet{Documents: docs, MinASN: minASN, MaxASN: maxASN}, nil
	}
}
