// Package params normalizes client-supplied pagination and sorting input
// into a validated struct before any query is constructed. Sort keys and
// order are the only values ever spliced into query text, and only after
// validation against a fixed per-entity allow-list.
package params

import (
	"strconv"

	"github.com/neoflix/neoflix-go/internal/apperr"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Sort identifies a property an entity listing may be ordered by.
type Sort string

const (
	SortTitle      Sort = "title"
	SortReleased   Sort = "released"
	SortImdbRating Sort = "imdbRating"
	SortName       Sort = "name"
	SortRating     Sort = "rating"
	SortTimestamp  Sort = "timestamp"
)

// DefaultLimit is applied when no limit is supplied.
const DefaultLimit = 100

// Allowed binds a sort allow-list to the defaults an operation falls
// back to when the caller supplies none.
type Allowed struct {
	Sorts        []Sort
	Default      Sort
	DefaultOrder Order // empty means ascending
}

func (a Allowed) contains(s Sort) bool {
	for _, allowed := range a.Sorts {
		if allowed == s {
			return true
		}
	}
	return false
}

// Per-entity allow-lists. These are the only property names that may
// reach query text.
var (
	MovieSorts  = Allowed{Sorts: []Sort{SortTitle, SortReleased, SortImdbRating}, Default: SortTitle}
	PeopleSorts = Allowed{Sorts: []Sort{SortName}, Default: SortName}
	RatingSorts = Allowed{Sorts: []Sort{SortRating, SortTimestamp}, Default: SortTimestamp, DefaultOrder: OrderDesc}
)

// Params is the normalized pagination/sort contract accepted by every
// listing operation.
type Params struct {
	Query string // optional free-text filter, empty means unset
	Sort  Sort
	Order Order
	Limit int
	Skip  int
}

// Raw holds the unparsed values as extracted from a request. Empty
// strings mean "not supplied".
type Raw struct {
	Query string
	Sort  string
	Order string
	Limit string
	Skip  string
}

// Parse validates raw input against an operation's allow-list, applying
// defaults for anything unset. It fails with an invalid-parameter error
// before any transaction is opened.
func Parse(raw Raw, allowed Allowed) (Params, error) {
	p := Params{
		Query: raw.Query,
		Sort:  allowed.Default,
		Order: OrderAsc,
		Limit: DefaultLimit,
		Skip:  0,
	}

	if raw.Sort != "" {
		s := Sort(raw.Sort)
		if !allowed.contains(s) {
			return Params{}, apperr.InvalidParameterf("invalid sort key %q", raw.Sort)
		}
		p.Sort = s
	}

	switch raw.Order {
	case "":
		if allowed.DefaultOrder == OrderDesc {
			p.Order = OrderDesc
		}
	case "ASC", "asc":
		p.Order = OrderAsc
	case "DESC", "desc":
		p.Order = OrderDesc
	default:
		return Params{}, apperr.InvalidParameterf("invalid order %q", raw.Order)
	}

	if raw.Limit != "" {
		limit, err := strconv.Atoi(raw.Limit)
		if err != nil {
			return Params{}, apperr.InvalidParameterf("invalid limit %q", raw.Limit)
		}
		if limit < 0 {
			return Params{}, apperr.InvalidParameterf("limit must be non-negative, got %d", limit)
		}
		p.Limit = limit
	}

	if raw.Skip != "" {
		skip, err := strconv.Atoi(raw.Skip)
		if err != nil {
			return Params{}, apperr.InvalidParameterf("invalid skip %q", raw.Skip)
		}
		if skip < 0 {
			return Params{}, apperr.InvalidParameterf("skip must be non-negative, got %d", skip)
		}
		p.Skip = skip
	}

	return p, nil
}

// Default returns the params an operation uses when the caller supplies
// nothing at all.
func Default(allowed Allowed) Params {
	p, _ := Parse(Raw{}, allowed)
	return p
}
