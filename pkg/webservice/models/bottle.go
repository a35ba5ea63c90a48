package models

// Bottle is a read-only container of messages.
type Bottle struct {
	ID                   int64   `gorm:"column:id;primaryKey;autoIncrement:false"`
	Name                 *string `gorm:"column:name"`
	ProtocolVersionMajor int     `gorm:"column:protocolversionmajor"`
	ProtocolVersionMinor int     `gorm:"column:protocolversionminor"`
}

func (Bottle) TableName() string { return "bottles" }

// BottleInfo is the aggregate returned for GET /bottles/<id>.
type BottleInfo struct {
	ID                   int64
	Name                 *string
	MessageCount         int64 `gorm:"column:nom"`
	ProtocolVersionMajor int   `gorm:"column:protocolversionmajor"`
	ProtocolVersionMinor int   `gorm:"column:protocolversionminor"`
}
