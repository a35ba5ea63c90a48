package util

import "fmt"

// URLBuilder produces the absolute URLs handed out to clients. Images are
// always addressed as .png.
type URLBuilder struct {
	Host string
}

func (u URLBuilder) MessagesURL(bottleID int64, limit int) string {
	return fmt.Sprintf("http://%s/bottles/%d/messages?limit=%d", u.Host, bottleID, limit)
}

func (u URLBuilder) MessageURL(bottleID, messageID int64) string {
	return fmt.Sprintf("http://%s/bottles/%d/messages/%d", u.Host, bottleID, messageID)
}

func (u URLBuilder) ImageURL(bottleID, messageID int64) string {
	return u.MessageURL(bottleID, messageID) + ".png"
}
