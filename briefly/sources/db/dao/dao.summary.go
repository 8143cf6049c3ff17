// briefly/sources/db/dao/dao.summary.go
package dao

import (
	"context"
	"time"

	"briefly/briefly/sources/db/models"

	"gorm.io/gorm"
)

// SummaryDAO owns the summaries table. Every operation except Create filters
// by both id and user_id: a record owned by someone else is indistinguishable
// from a record that does not exist.
type SummaryDAO struct {
	DB *gorm.DB
}

func NewSummaryDAO(db *gorm.DB) *SummaryDAO {
	return &SummaryDAO{DB: db}
}

func (dao *SummaryDAO) Create(ctx context.Context, summary *models.Summary) error {
	return dao.DB.WithContext(ctx).Create(summary).Error
}

// GetByID returns nil, nil when the record is absent or not owned by userID.
func (dao *SummaryDAO) GetByID(ctx context.Context, id, userID string) (*models.Summary, error) {
	var summary models.Summary
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&summary).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (dao *SummaryDAO) ListByUser(ctx context.Context, userID string) ([]models.Summary, error) {
	var summaries []models.Summary
	err := dao.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// UpdateContent replaces content and refreshes updated_at; url, user_id and
// created_at are never touched. Returns nil, nil when no owned row matched.
func (dao *SummaryDAO) UpdateContent(ctx context.Context, id, userID, content string) (*models.Summary, error) {
	res := dao.DB.WithContext(ctx).
		Model(&models.Summary{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return dao.GetByID(ctx, id, userID)
}

// Delete reports whether an owned row was actually removed.
func (dao *SummaryDAO) Delete(ctx context.Context, id, userID string) (bool, error) {
	res := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Summary{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
