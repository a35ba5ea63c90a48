package models

import (
	"net/url"
	"strconv"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
)

// DeleteDateParam is the query parameter holding the delete date.
const DeleteDateParam = "del"

type ListMessagesParams struct {
	Limit      int
	Offset     int
	DeleteDate *string
}

// DeleteFilter selects the tombstone listing which ignores limit and offset.
func (p ListMessagesParams) DeleteFilter() bool { return p.DeleteDate != nil }

// NewListMessagesParams reads limit, offset and del. One of limit or del is
// mandatory; del wins when both are given.
func NewListMessagesParams(q url.Values) (ListMessagesParams, error) {
	var p ListMessagesParams
	if q.Has(DeleteDateParam) {
		del := q.Get(DeleteDateParam)
		p.DeleteDate = &del
		return p, nil
	}
	if !q.Has("limit") {
		return p, problem.NewBadRequest("GET variable 'limit' and 'del' not set (at least one is mandatory)")
	}

	limit, err := nonNegative(q.Get("limit"))
	if err != nil {
		return p, problem.NewBadRequest("invalid limit", problem.InvalidParam{Name: "limit", Reason: err.Error()})
	}
	p.Limit = limit

	if q.Has("offset") {
		offset, err := nonNegative(q.Get("offset"))
		if err != nil {
			return p, problem.NewBadRequest("invalid offset", problem.InvalidParam{Name: "offset", Reason: err.Error()})
		}
		p.Offset = offset
	}
	return p, nil
}

func nonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
