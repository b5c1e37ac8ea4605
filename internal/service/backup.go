// Package service 数据库备份服务
package service

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// BackupService 备份服务
type BackupService struct {
	cfg       *config.Config
	backupDir string
}

// BackupData 备份数据结构
type BackupData struct {
	Version    string             `json:"version"`
	CreatedAt  time.Time          `json:"created_at"`
	Users      []models.User      `json:"users"`
	Groups     []models.Group     `json:"groups"`
	Characters []models.Character `json:"characters"`
	Ownerships []models.Ownership `json:"ownerships"`
	Trades     []models.Trade     `json:"trades"`
}

// BackupResult 备份结果
type BackupResult struct {
	Filename   string
	FilePath   string
	Size       int64
	Duration   time.Duration
	Records    int
	Compressed bool
}

// NewBackupService 创建备份服务
func NewBackupService() *BackupService {
	cfg := config.Get()
	backupDir := cfg.Database.BackupDir
	if backupDir == "" {
		backupDir = "./backups"
	}

	os.MkdirAll(backupDir, 0755)

	return &BackupService{
		cfg:       cfg,
		backupDir: backupDir,
	}
}

// Backup 执行备份
func (s *BackupService) Backup(compress bool) (*BackupResult, error) {
	startTime := time.Now()
	db := database.GetDB()

	var data BackupData
	data.Version = "1.0"
	data.CreatedAt = time.Now()

	if err := db.Find(&data.Users).Error; err != nil {
		return nil, fmt.Errorf("备份用户失败: %w", err)
	}
	if err := db.Find(&data.Groups).Error; err != nil {
		return nil, fmt.Errorf("备份群组失败: %w", err)
	}
	if err := db.Find(&data.Characters).Error; err != nil {
		return nil, fmt.Errorf("备份角色失败: %w", err)
	}
	if err := db.Find(&data.Ownerships).Error; err != nil {
		return nil, fmt.Errorf("备份收藏失败: %w", err)
	}
	if err := db.Find(&data.Trades).Error; err != nil {
		return nil, fmt.Errorf("备份交易失败: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	var filename string
	if compress {
		filename = fmt.Sprintf("backup_%s.json.gz", timestamp)
	} else {
		filename = fmt.Sprintf("backup_%s.json", timestamp)
	}
	filePath := filepath.Join(s.backupDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化失败: %w", err)
	}

	var fileSize int64
	if compress {
		fileSize, err = s.writeCompressed(filePath, jsonData)
	} else {
		fileSize, err = s.writeRaw(filePath, jsonData)
	}
	if err != nil {
		return nil, err
	}

	totalRecords := len(data.Users) + len(data.Groups) + len(data.Characters) +
		len(data.Ownerships) + len(data.Trades)

	logger.Info().
		Str("file", filename).
		Int64("size", fileSize).
		Int("records", totalRecords).
		Msg("数据库备份完成")

	return &BackupResult{
		Filename:   filename,
		FilePath:   filePath,
		Size:       fileSize,
		Duration:   time.Since(startTime),
		Records:    totalRecords,
		Compressed: compress,
	}, nil
}

// writeRaw 写入原始 JSON
func (s *BackupService) writeRaw(path string, data []byte) (int64, error) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("写入文件失败: %w", err)
	}
	info, _ := os.Stat(path)
	return info.Size(), nil
}

// writeCompressed 写入压缩文件
func (s *BackupService) writeCompressed(path string, data []byte) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("创建文件失败: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	if _, err := gz.Write(data); err != nil {
		return 0, fmt.Errorf("压缩写入失败: %w", err)
	}

	gz.Close()
	file.Close()

	info, _ := os.Stat(path)
	return info.Size(), nil
}

// Restore 从备份恢复
func (s *BackupService) Restore(filePath string) error {
	var data []byte
	var err error

	if filepath.Ext(filePath) == ".gz" {
		data, err = s.readCompressed(filePath)
	} else {
		data, err = os.ReadFile(filePath)
	}
	if err != nil {
		return fmt.Errorf("读取备份文件失败: %w", err)
	}

	var backupData BackupData
	if err := json.Unmarshal(data, &backupData); err != nil {
		return fmt.Errorf("解析备份数据失败: %w", err)
	}

	db := database.GetDB()

	for _, user := range backupData.Users {
		if err := db.Save(&user).Error; err != nil {
			logger.Warn().Err(err).Int64("tg", user.TG).Msg("恢复用户失败")
		}
	}
	for _, group := range backupData.Groups {
		if err := db.Save(&group).Error; err != nil {
			logger.Warn().Err(err).Int64("chat", group.ChatID).Msg("恢复群组失败")
		}
	}
	for _, character := range backupData.Characters {
		if err := db.Save(&character).Error; err != nil {
			logger.Warn().Err(err).Uint("id", character.ID).Msg("恢复角色失败")
		}
	}
	for _, ownership := range backupData.Ownerships {
		if err := db.Save(&ownership).Error; err != nil {
			logger.Warn().Err(err).Uint("id", ownership.ID).Msg("恢复收藏失败")
		}
	}
	for _, trade := range backupData.Trades {
		if err := db.Save(&trade).Error; err != nil {
			logger.Warn().Err(err).Str("uuid", trade.UUID).Msg("恢复交易失败")
		}
	}

	logger.Info().
		Int("users", len(backupData.Users)).
		Int("characters", len(backupData.Characters)).
		Int("ownerships", len(backupData.Ownerships)).
		Msg("数据库恢复完成")

	return nil
}

// readCompressed 读取压缩文件
func (s *BackupService) readCompressed(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	return io.ReadAll(gz)
}

// BackupInfo 备份信息
type BackupInfo struct {
	Filename  string
	Size      int64
	CreatedAt time.Time
}

// ListBackups 列出所有备份，最新在前
func (s *BackupService) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, err
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			Filename:  entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// CleanOldBackups 超出保留数量的旧备份删除，返回删除条数
func (s *BackupService) CleanOldBackups(keepCount int) (int, error) {
	if keepCount <= 0 {
		keepCount = 7
	}

	backups, err := s.ListBackups()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		filePath := filepath.Join(s.backupDir, backup.Filename)
		if err := os.Remove(filePath); err != nil {
			logger.Warn().Err(err).Str("file", backup.Filename).Msg("删除旧备份失败")
		} else {
			deleted++
			logger.Debug().Str("file", backup.Filename).Msg("已删除旧备份")
		}
	}

	return deleted, nil
}

// GetLatestBackup 获取最新备份
func (s *BackupService) GetLatestBackup() (*BackupInfo, error) {
	backups, err := s.ListBackups()
	if err != nil {
		return nil, err
	}
	if len(backups) == 0 {
		return nil, nil
	}
	return &backups[0], nil
}

// FormatSize 格式化文件大小
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
