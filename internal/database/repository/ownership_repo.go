// Package repository 收藏数据仓库
package repository

import (
	"errors"
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// OwnershipRepository 收藏仓库
type OwnershipRepository struct {
	db *gorm.DB
}

// NewOwnershipRepository 创建收藏仓库
func NewOwnershipRepository() *OwnershipRepository {
	return &OwnershipRepository{db: database.GetDB()}
}

// GetByUserAndCharacter 获取用户对某角色的持有记录
func (r *OwnershipRepository) GetByUserAndCharacter(userTG int64, characterID uint) (*models.Ownership, error) {
	var ownership models.Ownership
	err := r.db.Where("user_tg = ? AND character_id = ?", userTG, characterID).
		First(&ownership).Error
	if err != nil {
		return nil, err
	}
	return &ownership, nil
}

// AddCopy 为用户增加一份角色，首次持有则创建记录
// 返回增加后的持有份数
func (r *OwnershipRepository) AddCopy(userTG int64, characterID uint) (int, error) {
	return r.addCopyTx(r.db, userTG, characterID)
}

func (r *OwnershipRepository) addCopyTx(tx *gorm.DB, userTG int64, characterID uint) (int, error) {
	now := time.Now()

	var ownership models.Ownership
	err := tx.Where("user_tg = ? AND character_id = ?", userTG, characterID).
		First(&ownership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ownership = models.Ownership{
			UserTG:         userTG,
			CharacterID:    characterID,
			Count:          1,
			FirstClaimedAt: now,
			LastClaimedAt:  now,
		}
		if err := tx.Create(&ownership).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Model(&ownership).Updates(map[string]interface{}{
		"count":           gorm.Expr("count + 1"),
		"last_claimed_at": now,
	}).Error; err != nil {
		return 0, err
	}
	return ownership.Count + 1, nil
}

// RemoveCopy 扣减用户一份角色，份数归零则删除记录
func (r *OwnershipRepository) RemoveCopy(userTG int64, characterID uint) error {
	return r.removeCopyTx(r.db, userTG, characterID)
}

func (r *OwnershipRepository) removeCopyTx(tx *gorm.DB, userTG int64, characterID uint) error {
	var ownership models.Ownership
	err := tx.Where("user_tg = ? AND character_id = ?", userTG, characterID).
		First(&ownership).Error
	if err != nil {
		return err
	}

	if ownership.Count <= 1 {
		return tx.Delete(&ownership).Error
	}
	return tx.Model(&ownership).Update("count", gorm.Expr("count - 1")).Error
}

// MoveCopy 在同一事务内把一份角色从 giver 移动到 receiver
func (r *OwnershipRepository) MoveCopy(tx *gorm.DB, giverTG, receiverTG int64, characterID uint) error {
	if err := r.removeCopyTx(tx, giverTG, characterID); err != nil {
		return err
	}
	_, err := r.addCopyTx(tx, receiverTG, characterID)
	return err
}

// GetCollection 分页获取用户收藏，附带角色信息
func (r *OwnershipRepository) GetCollection(userTG int64, limit, offset int) ([]models.Ownership, error) {
	var ownerships []models.Ownership
	err := r.db.Preload("Character").
		Where("user_tg = ?", userTG).
		Order("last_claimed_at DESC").
		Limit(limit).Offset(offset).
		Find(&ownerships).Error
	return ownerships, err
}

// CountDistinct 用户收藏的不同角色数
func (r *OwnershipRepository) CountDistinct(userTG int64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ownership{}).Where("user_tg = ?", userTG).Count(&count).Error
	return count, err
}

// CountTotal 用户持有的角色总份数
func (r *OwnershipRepository) CountTotal(userTG int64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Ownership{}).
		Where("user_tg = ?", userTG).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}

// CollectorRow 排行榜条目
type CollectorRow struct {
	UserTG   int64
	Distinct int64
	Total    int64
}

// TopCollectors 按不同角色数取收藏排行
func (r *OwnershipRepository) TopCollectors(limit int) ([]CollectorRow, error) {
	var rows []CollectorRow
	err := r.db.Model(&models.Ownership{}).
		Select("user_tg, COUNT(*) AS `distinct`, COALESCE(SUM(count), 0) AS total").
		Group("user_tg").
		Order("`distinct` DESC, total DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
