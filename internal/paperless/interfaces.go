package paperless

import (
	"context"

	"github.com/Veraticus/asnreport/internal/model"
)

// DocumentSource defines the contract for fetching report inputs.
// This interface allows for easy mocking in tests.
type DocumentSource interface {
	FetchCustomField(ctx context.Context, id int) (*model.CustomField, error)
	FetchCorrespondents(ctx context.Context) ([]model.Correspondent, error)
	FetchDocuments(ctx context.Context, asnFrom, asnTo int) (*DocumentSet, error)
}

// Progress receives paging updates while a collection is fetched.
type Progress interface {
	Start(resource string, total int)
	Add(n int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(string, int) {}
func (noopProgress) Add(int)           {}
func (noopProgress) Finish()           {}
