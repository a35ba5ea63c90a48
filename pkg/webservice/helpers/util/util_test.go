package util

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/serializers"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

var urls = URLBuilder{Host: "bottles.example.org"}

func TestURLBuilder(t *testing.T) {
	assert.Equal(t, "http://bottles.example.org/bottles/42/messages?limit=3", urls.MessagesURL(42, 3))
	assert.Equal(t, "http://bottles.example.org/bottles/42/messages/1", urls.MessageURL(42, 1))
	assert.Equal(t, "http://bottles.example.org/bottles/42/messages/1.png", urls.ImageURL(42, 1))
}

func TestToBottleTree(t *testing.T) {
	n := ToBottleTree(&models.BottleInfo{ID: 42, Name: ptr("Atlantic"), MessageCount: 3, ProtocolVersionMajor: 2, ProtocolVersionMinor: 1})
	out, err := serializers.Render(serializers.JSON, n)
	require.NoError(t, err)
	assert.Equal(t, `{"id":42,"name":"Atlantic","nom":3,"protocolVersionMajor":2,"protocolVersionMinor":1}`, string(out))
}

func TestToMessageTree_Live(t *testing.T) {
	m := models.Message{
		BottleID: 42, MessageID: 1, Title: ptr("T"), Text: "hi", HasPicture: true,
		Author: "a", Timestamp: "t", Longitude: ptr(4.5), Latitude: ptr(52.25), Crc: "x",
	}
	n := ToMessageTree(m, urls, false)
	assert.Equal(t, []string{"btlID", "msgID", "title", "txt", "img", "author", "time", "location", "crc"}, n.Keys())

	img, _ := n.Get("img")
	assert.Equal(t, "http://bottles.example.org/bottles/42/messages/1.png", img.(tree.Scalar).Text())
}

func TestToMessageTree_PartialLocationIsOmitted(t *testing.T) {
	m := models.Message{BottleID: 42, MessageID: 1, Text: "hi", Longitude: ptr(4.5)}
	assert.False(t, ToMessageTree(m, urls, false).Has("location"))
}

func TestToMessageTree_Tombstone(t *testing.T) {
	rows := []models.Message{
		{BottleID: 42, MessageID: 1, Title: ptr("T"), Text: "secret", HasPicture: true, Author: "a", Timestamp: "t", ToBeDeleted: true},
		{BottleID: 42, MessageID: 2, Title: ptr("T"), Text: "secret", Author: "a", Timestamp: "t", Deleted: ptr("2024-03-01")},
	}

	for _, m := range rows {
		n := ToMessageTree(m, urls, false)
		txt, ok := n.Get("txt")
		require.True(t, ok)
		assert.Equal(t, "", txt.(tree.Scalar).Text())
		assert.False(t, n.Has("img"))
		assert.True(t, n.Has("author"))
		assert.True(t, n.Has("time"))
		assert.False(t, n.Has("toBeDeleted"))

		for _, f := range []serializers.Format{serializers.JSON, serializers.XML, serializers.HTML, serializers.Text} {
			out, err := serializers.Render(f, n)
			require.NoError(t, err)
			assert.NotContains(t, string(out), "secret", "format %s", f)
		}
	}

	withState := ToMessageTree(rows[1], urls, true)
	assert.Equal(t, []string{"btlID", "msgID", "txt", "author", "time", "toBeDeleted", "deleted", "crc"}, withState.Keys())
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr problem.APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, status, apiErr.Status)
}

func TestDecodeMessages(t *testing.T) {
	in, err := DecodeMessages(strings.NewReader(`[{"btlID":42,"msgID":1,"txt":"hi","author":"a","time":"t","crc":"x"}]`))
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, int64(1), *in[0].MessageID)

	for _, body := range []string{``, `[]`, `{"btlID":42}`, `not json`, `[{"btlID":"42"}]`, `[1]`} {
		_, err := DecodeMessages(strings.NewReader(body))
		requireStatus(t, err, http.StatusBadRequest)
	}
}

func TestDecodeMessage(t *testing.T) {
	in, err := DecodeMessage(strings.NewReader(` {"btlID":42,"msgID":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(42), *in.BottleID)
	assert.Nil(t, in.Text)

	_, err = DecodeMessage(strings.NewReader(`[{"btlID":42}]`))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestDecodeIDs(t *testing.T) {
	ids, err := DecodeIDs(strings.NewReader(`[1, "2", 3]`))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	for _, body := range []string{`[]`, `["x"]`, `[1.5]`, `{}`} {
		_, err := DecodeIDs(strings.NewReader(body))
		requireStatus(t, err, http.StatusBadRequest)
	}
}
