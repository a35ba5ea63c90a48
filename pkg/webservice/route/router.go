package route

import (
	"net/http"
	"strings"
)

// Operation names what a request asks for.
type Operation int

const (
	NotFound Operation = iota
	MethodNotAllowed
	GetBottleInfo
	ListMessages
	InsertBatch
	MarkDeletedBatch
	FetchImage
	GetSingleMessage
	InsertSingle
)

var operationNames = map[Operation]string{
	NotFound:         "NotFound",
	MethodNotAllowed: "MethodNotAllowed",
	GetBottleInfo:    "GetBottleInfo",
	ListMessages:     "ListMessages",
	InsertBatch:      "InsertBatch",
	MarkDeletedBatch: "MarkDeletedBatch",
	FetchImage:       "FetchImage",
	GetSingleMessage: "GetSingleMessage",
	InsertSingle:     "InsertSingle",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return "Unknown"
}

const (
	AllowGet     = "GET"
	AllowGetPost = "GET, POST"
)

// Flags carries the query parameters that influence routing.
type Flags struct {
	// DeleteDate is set when the "del" query parameter is present.
	DeleteDate bool
}

// Decision is the outcome of Resolve. Allow is only set for MethodNotAllowed.
type Decision struct {
	Op    Operation
	Allow string
}

// Resolve maps a route and method to an operation.
func Resolve(r Route, method string, f Flags) Decision {
	if !r.Valid() {
		return Decision{Op: NotFound}
	}

	switch r.Len() {
	case 2:
		if method == http.MethodGet {
			return Decision{Op: GetBottleInfo}
		}
		return Decision{Op: MethodNotAllowed, Allow: AllowGet}
	case 3:
		switch method {
		case http.MethodGet:
			return Decision{Op: ListMessages}
		case http.MethodPost:
			if f.DeleteDate {
				return Decision{Op: MarkDeletedBatch}
			}
			return Decision{Op: InsertBatch}
		}
		return Decision{Op: MethodNotAllowed, Allow: AllowGetPost}
	default:
		switch method {
		case http.MethodGet:
			if strings.EqualFold(r.Extension(), "png") {
				return Decision{Op: FetchImage}
			}
			return Decision{Op: GetSingleMessage}
		case http.MethodPost:
			return Decision{Op: InsertSingle}
		}
		return Decision{Op: MethodNotAllowed, Allow: AllowGetPost}
	}
}
