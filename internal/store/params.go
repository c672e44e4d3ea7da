package store

import (
	"fmt"

	"github.com/caterdir/caterdir-server/internal/errors"
)

// Page size bounds enforced at the validation boundary. Unlike the clamping
// in Paginate, violations here are rejected, not corrected.
const (
	MinPerPage = 1
	MaxPerPage = 100
)

// ListParams carries validated pagination input for list queries.
type ListParams struct {
	Page    int
	PerPage int
}

// DefaultListParams returns the first page with the default page size.
func DefaultListParams() ListParams {
	return ListParams{Page: 1, PerPage: DefaultPerPage}
}

// Validate rejects out-of-range pagination parameters.
func (p ListParams) Validate() error {
	if p.Page < 1 {
		return errors.Validationf("page must be >= 1, got %d", p.Page)
	}
	if p.PerPage < MinPerPage || p.PerPage > MaxPerPage {
		return errors.Validationf("per_page must be between %d and %d, got %d", MinPerPage, MaxPerPage, p.PerPage)
	}
	return nil
}

// Facility search filter fields.
const (
	FilterCity         = "city"
	FilterTag          = "tag"
	FilterFacilityName = "facility_name"
)

// Search filter combinators. Tokens are case-sensitive: "and" is rejected.
const (
	OperatorAnd = "AND"
	OperatorOr  = "OR"
)

// SearchParams carries the facility search criteria.
// An empty Filters list means "match against all supported fields".
type SearchParams struct {
	Query    string
	Filters  []string
	Operator string
}

// Validate checks filter fields and the operator token.
func (p SearchParams) Validate() error {
	for _, f := range p.Filters {
		switch f {
		case FilterCity, FilterTag, FilterFacilityName:
		default:
			return errors.ValidationWithDetails(
				fmt.Sprintf("unsupported filter field %q", f),
				map[string]string{"filter": "must be one of: city, tag, facility_name"},
			)
		}
	}

	switch p.Operator {
	case "", OperatorAnd, OperatorOr:
	default:
		return errors.ValidationWithDetails(
			fmt.Sprintf("unsupported operator %q", p.Operator),
			map[string]string{"operator": "must be AND or OR"},
		)
	}

	return nil
}

// EffectiveOperator returns the combinator to use, defaulting to OR.
func (p SearchParams) EffectiveOperator() string {
	if p.Operator == "" {
		return OperatorOr
	}
	return p.Operator
}
