// Package repository 用户数据仓库
package repository

import (
	"time"

	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// UserRepository 用户仓库
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository() *UserRepository {
	return &UserRepository{db: database.GetDB()}
}

// Create 创建用户
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByTG 根据 TG ID 获取用户
func (r *UserRepository) GetByTG(tg int64) (*models.User, error) {
	var user models.User
	err := r.db.Where("tg = ?", tg).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureExists 确保用户存在，不存在则以初始金币创建
func (r *UserRepository) EnsureExists(tg int64, username, firstName string, initialCoins int) (*models.User, error) {
	user, err := r.GetByTG(tg)
	if err == nil {
		// 顺带刷新名称，Telegram 上用户名会变
		if user.Username != username || user.FirstName != firstName {
			r.db.Model(user).Updates(map[string]interface{}{
				"username":   username,
				"first_name": firstName,
			})
			user.Username = username
			user.FirstName = firstName
		}
		return user, nil
	}

	newUser := &models.User{
		TG:        tg,
		Username:  username,
		FirstName: firstName,
		Coins:     initialCoins,
		CreatedAt: time.Now(),
	}
	if err := r.Create(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

// UpdateFields 更新指定字段
func (r *UserRepository) UpdateFields(tg int64, updates map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("tg = ?", tg).Updates(updates).Error
}

// AddCoins 增减金币（单条 UPDATE，负数扣除）
func (r *UserRepository) AddCoins(tg int64, delta int) error {
	return r.db.Model(&models.User{}).Where("tg = ?", tg).
		Update("coins", gorm.Expr("coins + ?", delta)).Error
}

// IncrementSummons 累计召唤次数 +1
func (r *UserRepository) IncrementSummons(tg int64) error {
	return r.db.Model(&models.User{}).Where("tg = ?", tg).
		Update("total_summons", gorm.Expr("total_summons + 1")).Error
}

// Count 用户总数
func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
