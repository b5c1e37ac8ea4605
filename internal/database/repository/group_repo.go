// Package repository 群组数据仓库
package repository

import (
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// GroupRepository 群组仓库
type GroupRepository struct {
	db *gorm.DB
}

// NewGroupRepository 创建群组仓库
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{db: database.GetDB()}
}

// GetByChatID 根据群组 ID 获取群组
func (r *GroupRepository) GetByChatID(chatID int64) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("chat_id = ?", chatID).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// EnsureExists 确保群组存在，不存在则以默认配置创建
func (r *GroupRepository) EnsureExists(chatID int64, defaultMode string, defaultLimit int) (*models.Group, error) {
	group, err := r.GetByChatID(chatID)
	if err == nil {
		return group, nil
	}

	newGroup := &models.Group{
		ChatID:    chatID,
		Mode:      models.GroupMode(defaultMode),
		DropLimit: defaultLimit,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(newGroup).Error; err != nil {
		return nil, err
	}
	return newGroup, nil
}

// SetMode 设置群组模式
func (r *GroupRepository) SetMode(chatID int64, mode models.GroupMode) error {
	return r.db.Model(&models.Group{}).Where("chat_id = ?", chatID).
		Update("mode", mode).Error
}

// SetDropLimit 设置掉落阈值
func (r *GroupRepository) SetDropLimit(chatID int64, limit int) error {
	return r.db.Model(&models.Group{}).Where("chat_id = ?", chatID).
		Update("drop_limit", limit).Error
}

// IncrementMessages 消息计数 +1，单条 UPDATE 保证原子
func (r *GroupRepository) IncrementMessages(chatID int64) error {
	return r.db.Model(&models.Group{}).Where("chat_id = ?", chatID).
		Update("message_count", gorm.Expr("message_count + 1")).Error
}

// ResetMessages 消息计数归零并记录掉落时间
func (r *GroupRepository) ResetMessages(chatID int64, droppedAt time.Time) error {
	return r.db.Model(&models.Group{}).Where("chat_id = ?", chatID).
		Updates(map[string]interface{}{
			"message_count": 0,
			"last_drop_at":  droppedAt,
		}).Error
}

// ResetCounter 仅将消息计数归零（掉落被放弃时使用）
func (r *GroupRepository) ResetCounter(chatID int64) error {
	return r.db.Model(&models.Group{}).Where("chat_id = ?", chatID).
		Update("message_count", 0).Error
}

// Count 群组总数
func (r *GroupRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Group{}).Count(&count).Error
	return count, err
}
