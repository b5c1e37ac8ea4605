// Package repository 交易数据仓库
package repository

import (
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// TradeRepository 交易仓库
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository 创建交易仓库
func NewTradeRepository() *TradeRepository {
	return &TradeRepository{db: database.GetDB()}
}

// Create 创建交易
func (r *TradeRepository) Create(trade *models.Trade) error {
	return r.db.Create(trade).Error
}

// GetByID 根据 ID 获取交易，附带双方角色
func (r *TradeRepository) GetByID(id uint) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.Preload("FromCharacter").Preload("ToCharacter").
		Where("id = ?", id).First(&trade).Error
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// GetByUUID 根据 UUID 获取交易
func (r *TradeRepository) GetByUUID(uuid string) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.Preload("FromCharacter").Preload("ToCharacter").
		Where("uuid = ?", uuid).First(&trade).Error
	if err != nil {
		return nil, err
	}
	return &trade, nil
}

// UpdateStatus 更新交易状态并记录完成时间
func (r *TradeRepository) UpdateStatus(tx *gorm.DB, id uint, status models.TradeStatus) error {
	if tx == nil {
		tx = r.db
	}
	now := time.Now()
	return tx.Model(&models.Trade{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": &now,
		}).Error
}

// PendingForUser 用户相关的待处理交易
func (r *TradeRepository) PendingForUser(userTG int64) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.Preload("FromCharacter").Preload("ToCharacter").
		Where("status = ? AND (from_tg = ? OR to_tg = ?)", models.TradePending, userTG, userTG).
		Order("created_at DESC").
		Find(&trades).Error
	return trades, err
}

// HistoryForUser 用户交易历史，最新在前
func (r *TradeRepository) HistoryForUser(userTG int64, limit int) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.Preload("FromCharacter").Preload("ToCharacter").
		Where("from_tg = ? OR to_tg = ?", userTG, userTG).
		Order("created_at DESC").
		Limit(limit).
		Find(&trades).Error
	return trades, err
}

// CountByStatus 按状态统计交易数
func (r *TradeRepository) CountByStatus(status models.TradeStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Trade{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
