// Package service 角色目录服务
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/internal/images"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"github.com/smysle/waifu-collector-go/pkg/utils"
)

var (
	ErrBadFormat    = errors.New("格式错误，应为：名字 | 作品 | waifu/husbando | 稀有度")
	ErrBadRarity    = errors.New("未知稀有度")
	ErrBadGender    = errors.New("类别只能是 waifu 或 husbando")
	ErrEmptyQuery   = errors.New("搜索关键词不能为空")
	ErrCharNotFound = errors.New("角色不存在")
)

// SearchResultLimit 搜索结果上限
const SearchResultLimit = 20

// CharacterService 角色目录服务
type CharacterService struct {
	charRepo *repository.CharacterRepository
	images   *images.Client
}

// NewCharacterService 创建角色目录服务
func NewCharacterService() *CharacterService {
	return &CharacterService{
		charRepo: repository.NewCharacterRepository(),
		images:   images.GetClient(),
	}
}

// ParseAddInput 解析竖线分隔的录入格式
// 名字 | 作品 | waifu/husbando | 稀有度 [| 图片URL [| 描述]]
func ParseAddInput(input string) (*models.Character, error) {
	parts := strings.Split(input, "|")
	if len(parts) < 4 {
		return nil, ErrBadFormat
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	name, series := parts[0], parts[1]
	if name == "" || series == "" {
		return nil, ErrBadFormat
	}

	gender := strings.ToLower(parts[2])
	if !models.ValidMode(gender) {
		return nil, ErrBadGender
	}

	if !models.ValidRarity(parts[3]) {
		return nil, ErrBadRarity
	}

	character := &models.Character{
		Name:   name,
		Series: series,
		Gender: models.GroupMode(gender),
		Rarity: models.Rarity(parts[3]),
	}
	if len(parts) >= 5 && parts[4] != "" {
		character.ImageURL = parts[4]
	}
	if len(parts) >= 6 && parts[5] != "" {
		character.Description = parts[5]
	}
	return character, nil
}

// Add 录入新角色，带图片链接时先校验
func (s *CharacterService) Add(input string, addedBy int64) (*models.Character, error) {
	character, err := ParseAddInput(input)
	if err != nil {
		return nil, err
	}
	return s.insert(character, addedBy)
}

// AddFromPhoto 照片说明录入，没有图片链接时图片字段存 Telegram file id
func (s *CharacterService) AddFromPhoto(input, fileID string, addedBy int64) (*models.Character, error) {
	character, err := ParseAddInput(input)
	if err != nil {
		return nil, err
	}
	if !character.HasImage() {
		character.ImageURL = fileID
	}
	return s.insert(character, addedBy)
}

func (s *CharacterService) insert(character *models.Character, addedBy int64) (*models.Character, error) {
	// file id 形式的图片无从校验，只验 http(s) 链接
	if strings.HasPrefix(character.ImageURL, "http") {
		if err := s.images.Validate(character.ImageURL); err != nil {
			return nil, err
		}
	}

	character.AddedBy = addedBy
	character.CreatedAt = time.Now()
	if err := s.charRepo.Create(character); err != nil {
		return nil, fmt.Errorf("录入角色失败: %w", err)
	}

	// 目录变了，搜索缓存全部作废
	utils.CacheFlush()

	logger.Info().
		Uint("id", character.ID).
		Str("name", character.Name).
		Str("rarity", string(character.Rarity)).
		Int64("by", addedBy).
		Msg("新角色已录入")

	return character, nil
}

// Search 按名称或作品搜索，结果缓存 5 分钟
func (s *CharacterService) Search(query string) ([]models.Character, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	cacheKey := "search:" + strings.ToLower(query)
	if cached, ok := utils.CacheGet(cacheKey); ok {
		return cached.([]models.Character), nil
	}

	results, err := s.charRepo.Search(query, SearchResultLimit)
	if err != nil {
		return nil, err
	}

	utils.CacheSet(cacheKey, results, utils.SearchCacheTTL)
	return results, nil
}

// Get 根据 ID 获取角色
func (s *CharacterService) Get(id uint) (*models.Character, error) {
	character, err := s.charRepo.GetByID(id)
	if err != nil {
		return nil, ErrCharNotFound
	}
	return character, nil
}
