package models

import (
	"reflect"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/go-playground/validator/v10"
)

const (
	invalidBatchItem  = "Invalid JSON object: at least one mandatory field (btlID, msgID, txt, author, time, crc) is not set or the bottle ID does not equal the ID given in the request URL"
	invalidSingleItem = "Invalid JSON object: at least one mandatory field (btlID, msgID, txt, author, time, crc) is not set or the bottle ID or message ID does not equal the IDs given in the request URL"
)

// MessageInput is one inbound message record. Pointer fields tell a missing
// field apart from a zero value.
type MessageInput struct {
	BottleID  *int64         `json:"btlID" validate:"required"`
	MessageID *int64         `json:"msgID" validate:"required"`
	Title     *string        `json:"title,omitempty"`
	Text      *string        `json:"txt" validate:"required"`
	Image     *string        `json:"img,omitempty"`
	Author    *string        `json:"author" validate:"required"`
	Time      *string        `json:"time" validate:"required"`
	Crc       *string        `json:"crc" validate:"required"`
	Location  *LocationInput `json:"location,omitempty"`
}

type LocationInput struct {
	Longitude *float64 `json:"longitude" validate:"required_with=Latitude"`
	Latitude  *float64 `json:"latitude" validate:"required_with=Longitude"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required fields and that the IDs match the request
// URL. messageID is nil for batch items.
func (in MessageInput) Validate(bottleID int64, messageID *int64) error {
	detail := invalidBatchItem
	if messageID != nil {
		detail = invalidSingleItem
	}

	if err := validate.Struct(in); err != nil {
		return problem.NewBadRequest(detail, invalidParams(err)...)
	}
	if *in.BottleID != bottleID {
		return problem.NewBadRequest(detail, problem.InvalidParam{Name: "btlID", Reason: "does not match the bottle in the URL"})
	}
	if messageID != nil && *in.MessageID != *messageID {
		return problem.NewBadRequest(detail, problem.InvalidParam{Name: "msgID", Reason: "does not match the message in the URL"})
	}
	return nil
}

func invalidParams(err error) []problem.InvalidParam {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []problem.InvalidParam{{Name: "body", Reason: err.Error()}}
	}
	out := make([]problem.InvalidParam, 0, len(verrs))
	for _, fe := range verrs {
		reason := fe.Error()
		switch fe.Tag() {
		case "required":
			reason = "is required"
		case "required_with":
			reason = "longitude and latitude must be given together"
		}
		out = append(out, problem.InvalidParam{Name: fe.Field(), Reason: reason})
	}
	return out
}

// ToModel converts a validated input into a row.
func (in MessageInput) ToModel(hasPicture bool) *Message {
	m := &Message{
		BottleID:   *in.BottleID,
		MessageID:  *in.MessageID,
		Title:      in.Title,
		Text:       *in.Text,
		HasPicture: hasPicture,
		Author:     *in.Author,
		Timestamp:  *in.Time,
		Crc:        *in.Crc,
	}
	if in.Location != nil {
		m.Longitude = in.Location.Longitude
		m.Latitude = in.Location.Latitude
	}
	return m
}
