package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
)

// MaxBodyBytes bounds request bodies; images travel base64 encoded inline.
const MaxBodyBytes = 32 << 20

const (
	invalidArray  = "Invalid JSON array"
	invalidObject = "Invalid JSON object"
)

func readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > MaxBodyBytes {
		return nil, problem.NewBadRequest("request body too large")
	}
	return data, nil
}

// decodeArray decodes a non empty JSON array into raw elements.
func decodeArray(r io.Reader) ([]json.RawMessage, error) {
	data, err := readBody(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, problem.NewBadRequest(invalidArray)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || len(items) == 0 {
		return nil, problem.NewBadRequest(invalidArray)
	}
	return items, nil
}

// DecodeMessages decodes a batch of message records.
func DecodeMessages(r io.Reader) ([]models.MessageInput, error) {
	items, err := decodeArray(r)
	if err != nil {
		return nil, err
	}
	out := make([]models.MessageInput, len(items))
	for i, raw := range items {
		if err := json.Unmarshal(raw, &out[i]); err != nil {
			return nil, problem.NewBadRequest(fmt.Sprintf("%s: item %d: %v", invalidObject, i, err))
		}
	}
	return out, nil
}

// DecodeMessage decodes a single message object.
func DecodeMessage(r io.Reader) (models.MessageInput, error) {
	var in models.MessageInput
	data, err := readBody(r)
	if err != nil {
		return in, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return in, problem.NewBadRequest(invalidObject)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, problem.NewBadRequest(fmt.Sprintf("%s: %v", invalidObject, err))
	}
	return in, nil
}

// DecodeIDs decodes the message ids of a mark deleted batch. Ids may be
// numbers or numeric strings.
func DecodeIDs(r io.Reader) ([]int64, error) {
	items, err := decodeArray(r)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(items))
	for i, raw := range items {
		id, err := parseID(raw)
		if err != nil {
			return nil, problem.NewBadRequest(fmt.Sprintf("no ID array received: item %d: %s", i, raw))
		}
		ids[i] = id
	}
	return ids, nil
}

func parseID(raw json.RawMessage) (int64, error) {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
