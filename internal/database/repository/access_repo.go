// Package repository 特权与封禁数据仓库
package repository

import (
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// AccessRepository 特权/封禁仓库
type AccessRepository struct {
	db *gorm.DB
}

// NewAccessRepository 创建特权/封禁仓库
func NewAccessRepository() *AccessRepository {
	return &AccessRepository{db: database.GetDB()}
}

// AddSpecial 添加特权用户，重复添加幂等
func (r *AccessRepository) AddSpecial(userTG int64, username string) error {
	special := &models.SpecialUser{
		UserTG:   userTG,
		Username: username,
		AddedAt:  time.Now(),
	}
	return r.db.Save(special).Error
}

// RemoveSpecial 移除特权用户
func (r *AccessRepository) RemoveSpecial(userTG int64) error {
	return r.db.Where("user_tg = ?", userTG).Delete(&models.SpecialUser{}).Error
}

// IsSpecial 是否为特权用户
func (r *AccessRepository) IsSpecial(userTG int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.SpecialUser{}).Where("user_tg = ?", userTG).Count(&count).Error
	return count > 0, err
}

// ListSpecial 全部特权用户
func (r *AccessRepository) ListSpecial() ([]models.SpecialUser, error) {
	var users []models.SpecialUser
	err := r.db.Order("added_at").Find(&users).Error
	return users, err
}

// Ban 封禁用户，重复封禁更新原因
func (r *AccessRepository) Ban(userTG int64, username, reason string) error {
	banned := &models.BannedUser{
		UserTG:   userTG,
		Username: username,
		Reason:   reason,
		BannedAt: time.Now(),
	}
	return r.db.Save(banned).Error
}

// Unban 解封用户
func (r *AccessRepository) Unban(userTG int64) error {
	return r.db.Where("user_tg = ?", userTG).Delete(&models.BannedUser{}).Error
}

// IsBanned 是否被封禁
func (r *AccessRepository) IsBanned(userTG int64) (bool, error) {
	var count int64
	err := r.db.Model(&models.BannedUser{}).Where("user_tg = ?", userTG).Count(&count).Error
	return count > 0, err
}

// ListBanned 全部封禁用户
func (r *AccessRepository) ListBanned() ([]models.BannedUser, error) {
	var users []models.BannedUser
	err := r.db.Order("banned_at").Find(&users).Error
	return users, err
}
