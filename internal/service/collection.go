// Package service 收藏查询服务
package service

import (
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/utils"
)

// CollectionPageSize 收藏每页条数
const CollectionPageSize = 10

// CollectionPage 收藏分页
type CollectionPage struct {
	Items      []models.Ownership
	Page       int // 从 1 开始
	TotalPages int
	Distinct   int64 // 不同角色数
	Total      int64 // 总份数
}

// CollectionService 收藏查询服务
type CollectionService struct {
	userRepo *repository.UserRepository
	ownRepo  *repository.OwnershipRepository
}

// NewCollectionService 创建收藏查询服务
func NewCollectionService() *CollectionService {
	return &CollectionService{
		userRepo: repository.NewUserRepository(),
		ownRepo:  repository.NewOwnershipRepository(),
	}
}

// GetPage 获取用户收藏的某一页，页码越界收敛到边界
func (s *CollectionService) GetPage(userTG int64, page int) (*CollectionPage, error) {
	distinct, err := s.ownRepo.CountDistinct(userTG)
	if err != nil {
		return nil, err
	}
	total, err := s.ownRepo.CountTotal(userTG)
	if err != nil {
		return nil, err
	}

	totalPages := utils.TotalPages(int(distinct), CollectionPageSize)
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.ownRepo.GetCollection(userTG, CollectionPageSize, (page-1)*CollectionPageSize)
	if err != nil {
		return nil, err
	}

	return &CollectionPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Distinct:   distinct,
		Total:      total,
	}, nil
}

// Profile 用户档案
type Profile struct {
	User     *models.User
	Distinct int64
	Total    int64
}

// GetProfile 获取用户档案
func (s *CollectionService) GetProfile(userTG int64) (*Profile, error) {
	user, err := s.userRepo.GetByTG(userTG)
	if err != nil {
		return nil, ErrUserNotFound
	}
	distinct, err := s.ownRepo.CountDistinct(userTG)
	if err != nil {
		return nil, err
	}
	total, err := s.ownRepo.CountTotal(userTG)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Distinct: distinct, Total: total}, nil
}

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank     int
	Name     string
	UserTG   int64
	Distinct int64
	Total    int64
}

// TopCollectors 收藏排行榜
func (s *CollectionService) TopCollectors(limit int) ([]LeaderboardEntry, error) {
	rows, err := s.ownRepo.TopCollectors(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		name := "未知用户"
		if user, err := s.userRepo.GetByTG(row.UserTG); err == nil {
			name = user.DisplayName()
		}
		entries = append(entries, LeaderboardEntry{
			Rank:     i + 1,
			Name:     name,
			UserTG:   row.UserTG,
			Distinct: row.Distinct,
			Total:    row.Total,
		})
	}
	return entries, nil
}
