// Package repository 角色目录数据仓库
package repository

import (
	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"gorm.io/gorm"
)

// CharacterRepository 角色仓库
type CharacterRepository struct {
	db *gorm.DB
}

// NewCharacterRepository 创建角色仓库
func NewCharacterRepository() *CharacterRepository {
	return &CharacterRepository{db: database.GetDB()}
}

// Create 创建角色
func (r *CharacterRepository) Create(character *models.Character) error {
	return r.db.Create(character).Error
}

// GetByID 根据 ID 获取角色
func (r *CharacterRepository) GetByID(id uint) (*models.Character, error) {
	var character models.Character
	err := r.db.Where("id = ?", id).First(&character).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// GetRandomByGender 随机获取指定性别的角色
func (r *CharacterRepository) GetRandomByGender(gender models.GroupMode) (*models.Character, error) {
	var character models.Character
	err := r.db.Where("gender = ?", gender).
		Order("RAND()").Limit(1).First(&character).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// GetRandomByRarity 随机获取指定稀有度的角色
func (r *CharacterRepository) GetRandomByRarity(rarity models.Rarity) (*models.Character, error) {
	var character models.Character
	err := r.db.Where("rarity = ?", rarity).
		Order("RAND()").Limit(1).First(&character).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

// Search 按名称或作品模糊搜索
func (r *CharacterRepository) Search(query string, limit int) ([]models.Character, error) {
	var characters []models.Character
	pattern := "%" + query + "%"
	err := r.db.Where("name LIKE ? OR series LIKE ?", pattern, pattern).
		Order("name").Limit(limit).Find(&characters).Error
	return characters, err
}

// GetAll 获取全部角色
func (r *CharacterRepository) GetAll() ([]models.Character, error) {
	var characters []models.Character
	err := r.db.Order("id").Find(&characters).Error
	return characters, err
}

// List 分页获取角色
func (r *CharacterRepository) List(limit, offset int) ([]models.Character, error) {
	var characters []models.Character
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&characters).Error
	return characters, err
}

// Count 角色总数
func (r *CharacterRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Character{}).Count(&count).Error
	return count, err
}

// CountByGender 统计指定性别的角色数量
func (r *CharacterRepository) CountByGender(gender models.GroupMode) (int64, error) {
	var count int64
	err := r.db.Model(&models.Character{}).Where("gender = ?", gender).Count(&count).Error
	return count, err
}

// CountByRarity 按稀有度统计
func (r *CharacterRepository) CountByRarity() (map[models.Rarity]int64, error) {
	type row struct {
		Rarity models.Rarity
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Character{}).
		Select("rarity, COUNT(*) AS count").
		Group("rarity").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Rarity]int64, len(rows))
	for _, rr := range rows {
		counts[rr.Rarity] = rr.Count
	}
	return counts, nil
}
