package repositories

import (
	"context"
	"errors"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoDatabase is returned when the service runs without a store.
var ErrNoDatabase = errors.New("no database connection")

// MessageRepository is the relational store of bottles and messages.
type MessageRepository interface {
	// GetBottleInfo returns nil when the bottle is unknown or has no messages.
	GetBottleInfo(ctx context.Context, bottleID int64) (*models.BottleInfo, error)
	ListMessages(ctx context.Context, bottleID int64, params models.ListMessagesParams) ([]models.Message, error)
	GetMessage(ctx context.Context, bottleID, messageID int64) (*models.Message, error)
	// InsertMessage leaves an existing (bottle, message) row untouched and
	// reports zero affected rows for it.
	InsertMessage(ctx context.Context, m *models.Message) (int64, error)
	MarkDeleted(ctx context.Context, bottleID, messageID int64, date string) (int64, error)
	ListImageFlags(ctx context.Context, bottleID int64) ([]models.ImageFlag, error)
	// Transaction runs fn against a repository bound to one transaction. It
	// commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(repo MessageRepository) error) error
	Ping(ctx context.Context) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) conn(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	return r.db.WithContext(ctx), nil
}

func (r *messageRepository) GetBottleInfo(ctx context.Context, bottleID int64) (*models.BottleInfo, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var info models.BottleInfo
	res := db.Table("bottles").
		Select("bottles.id, bottles.name, COUNT(messages.message_id) AS nom, bottles.protocolversionmajor, bottles.protocolversionminor").
		Joins("INNER JOIN messages ON messages.bottle_id = bottles.id").
		Where("bottles.id = ?", bottleID).
		Group("bottles.id, bottles.name, bottles.protocolversionmajor, bottles.protocolversionminor").
		Scan(&info)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || info.Name == nil {
		return nil, nil
	}
	return &info, nil
}

func (r *messageRepository) ListMessages(ctx context.Context, bottleID int64, params models.ListMessagesParams) ([]models.Message, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	q := db.Where("bottle_id = ?", bottleID)
	if params.DeleteFilter() {
		q = q.Where("(to_be_deleted = ? OR deleted >= ?)", true, *params.DeleteDate)
	} else {
		q = q.Limit(params.Limit).Offset(params.Offset)
	}

	var msgs []models.Message
	if err := q.Order("message_id DESC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) GetMessage(ctx context.Context, bottleID, messageID int64) (*models.Message, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	var m models.Message
	err = db.Where("bottle_id = ? AND message_id = ?", bottleID, messageID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) InsertMessage(ctx context.Context, m *models.Message) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	return res.RowsAffected, res.Error
}

func (r *messageRepository) MarkDeleted(ctx context.Context, bottleID, messageID int64, date string) (int64, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return 0, err
	}
	res := db.Model(&models.Message{}).
		Where("bottle_id = ? AND message_id = ? AND to_be_deleted = ?", bottleID, messageID, true).
		Updates(map[string]any{"to_be_deleted": false, "deleted": date})
	return res.RowsAffected, res.Error
}

func (r *messageRepository) ListImageFlags(ctx context.Context, bottleID int64) ([]models.ImageFlag, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var flags []models.ImageFlag
	err = db.Model(&models.Message{}).
		Select("message_id, has_picture").
		Where("bottle_id = ?", bottleID).
		Find(&flags).Error
	return flags, err
}

func (r *messageRepository) Transaction(ctx context.Context, fn func(repo MessageRepository) error) error {
	db, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(&messageRepository{db: tx})
	})
}

func (r *messageRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
