package util

import (
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/tree"
)

func ToBottleTree(info *models.BottleInfo) *tree.Map {
	name := tree.Null()
	if info.Name != nil {
		name = tree.String(*info.Name)
	}
	return tree.NewMap().
		Set("id", tree.Int(info.ID)).
		Set("name", name).
		Set("nom", tree.Int(info.MessageCount)).
		Set("protocolVersionMajor", tree.Int(int64(info.ProtocolVersionMajor))).
		Set("protocolVersionMinor", tree.Int(int64(info.ProtocolVersionMinor)))
}

// ToMessageTree shapes one row. Tombstones keep their metadata, get an
// empty txt and lose title and img. withDeleteState adds toBeDeleted and deleted, which
// only the delete filter listing reports.
func ToMessageTree(m models.Message, urls URLBuilder, withDeleteState bool) *tree.Map {
	out := tree.NewMap().
		Set("btlID", tree.Int(m.BottleID)).
		Set("msgID", tree.Int(m.MessageID))

	if m.Tombstone() {
		out.Set("txt", tree.String(""))
	} else {
		if m.Title != nil {
			out.Set("title", tree.String(*m.Title))
		}
		out.Set("txt", tree.String(m.Text))
		if m.HasPicture {
			out.Set("img", tree.String(urls.ImageURL(m.BottleID, m.MessageID)))
		}
	}

	out.Set("author", tree.String(m.Author)).
		Set("time", tree.String(m.Timestamp))

	if withDeleteState {
		out.Set("toBeDeleted", tree.Bool(m.ToBeDeleted))
		if m.Deleted != nil {
			out.Set("deleted", tree.String(*m.Deleted))
		}
	}

	if m.HasLocation() {
		out.Set("location", tree.NewMap().
			Set("longitude", tree.Float(*m.Longitude)).
			Set("latitude", tree.Float(*m.Latitude)))
	}

	return out.Set("crc", tree.String(m.Crc))
}

func ToMessageList(msgs []models.Message, urls URLBuilder, withDeleteState bool) tree.List {
	out := make(tree.List, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ToMessageTree(m, urls, withDeleteState))
	}
	return out
}
