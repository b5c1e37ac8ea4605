// Package repository 掉落数据仓库
package repository

import (
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// DropRepository 掉落仓库
type DropRepository struct {
	db *gorm.DB
}

// NewDropRepository 创建掉落仓库
func NewDropRepository() *DropRepository {
	return &DropRepository{db: database.GetDB()}
}

// Create 记录一次掉落，chat_id 为主键保证每群至多一个
func (r *DropRepository) Create(drop *models.Drop) error {
	return r.db.Create(drop).Error
}

// GetByChatID 获取群组当前掉落，附带角色信息
func (r *DropRepository) GetByChatID(chatID int64) (*models.Drop, error) {
	var drop models.Drop
	err := r.db.Preload("Character").Where("chat_id = ?", chatID).First(&drop).Error
	if err != nil {
		return nil, err
	}
	return &drop, nil
}

// ClaimDelete 条件删除掉落，返回是否删除成功
// 并发认领靠这一条 DELETE 决胜负：影响行数为 1 的调用者获胜
func (r *DropRepository) ClaimDelete(chatID int64, characterID uint) (bool, error) {
	result := r.db.Where("chat_id = ? AND character_id = ?", chatID, characterID).
		Delete(&models.Drop{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete 直接删除群组掉落（超时清理使用）
func (r *DropRepository) Delete(chatID int64) error {
	return r.db.Where("chat_id = ?", chatID).Delete(&models.Drop{}).Error
}

// GetExpired 获取全部已过期的掉落
func (r *DropRepository) GetExpired(now time.Time) ([]models.Drop, error) {
	var drops []models.Drop
	err := r.db.Where("expires_at <= ?", now).Find(&drops).Error
	return drops, err
}

// DeleteExpired 批量删除已过期掉落，返回删除条数
func (r *DropRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&models.Drop{})
	return result.RowsAffected, result.Error
}

// GetAll 获取全部掉落（重启后恢复定时器使用）
func (r *DropRepository) GetAll() ([]models.Drop, error) {
	var drops []models.Drop
	err := r.db.Find(&drops).Error
	return drops, err
}
