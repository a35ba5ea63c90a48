package models

// Message is one row of the messages table, keyed by (bottle_id, message_id).
type Message struct {
	BottleID    int64    `gorm:"column:bottle_id;primaryKey;autoIncrement:false"`
	MessageID   int64    `gorm:"column:message_id;primaryKey;autoIncrement:false"`
	Title       *string  `gorm:"column:title"`
	Text        string   `gorm:"column:text;not null"`
	HasPicture  bool     `gorm:"column:has_picture;not null"`
	Author      string   `gorm:"column:author;not null"`
	Timestamp   string   `gorm:"column:timestamp;not null"`
	ToBeDeleted bool     `gorm:"column:to_be_deleted;not null"`
	Deleted     *string  `gorm:"column:deleted"`
	Longitude   *float64 `gorm:"column:longitude"`
	Latitude    *float64 `gorm:"column:latitude"`
	Crc         string   `gorm:"column:crc;not null"`
}

func (Message) TableName() string { return "messages" }

// Tombstone reports whether the content of m must be hidden.
func (m Message) Tombstone() bool {
	return m.ToBeDeleted || m.Deleted != nil
}

// HasLocation is true only when both coordinates are stored.
func (m Message) HasLocation() bool {
	return m.Longitude != nil && m.Latitude != nil
}

// ImageFlag is the projection used by the image sweep.
type ImageFlag struct {
	MessageID  int64 `gorm:"column:message_id"`
	HasPicture bool  `gorm:"column:has_picture"`
}
