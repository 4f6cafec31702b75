package handler

import (
	"fmt"
	"net/url"

	"github.com/corpfin/reimbursement-system/internal/core/domain"
	"github.com/corpfin/reimbursement-system/internal/core/ports"
)

// singleLookup resolves a query string into a typed lookup. Exactly one
// field=value pair is accepted; anything else is a bad request. The service
// layer decides whether the field itself is recognized.
func singleLookup(params url.Values) (ports.Lookup, error) {
	if len(params) != 1 {
		return ports.Lookup{}, fmt.Errorf("%w: exactly one lookup field expected", domain.ErrBadRequest)
	}
	for field, values := range params {
		return ports.Lookup{Field: field, Value: values[0]}, nil
	}
	return ports.Lookup{}, fmt.Errorf("%w: missing lookup field", domain.ErrBadRequest)
}
