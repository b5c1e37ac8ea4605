// Package config 配置管理模块
package config

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// Config 全局配置结构
type Config struct {
	BotName  string  `json:"bot_name"`
	BotToken string  `json:"bot_token"`
	Owner    int64   `json:"owner"`
	Admins   []int64 `json:"admins"`
	Groups   []int64 `json:"groups"`
	BotPhoto string  `json:"bot_photo"`

	Database  DatabaseConfig  `json:"database"`
	Game      GameConfig      `json:"game"`
	Scheduler SchedulerConfig `json:"scheduler"`
	API       APIConfig       `json:"api"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	BackupDir      string `json:"backup_dir"`
	BackupMaxCount int    `json:"backup_max_count"`
}

// GameConfig 游戏玩法配置
type GameConfig struct {
	InitialCoins     int            `json:"initial_coins"`      // 新用户初始金币
	SummonCost       int            `json:"summon_cost"`        // 单次召唤消耗
	MultiSummonCount int            `json:"multi_summon_count"` // 十连/多连数量
	DailyReward      int            `json:"daily_reward"`       // 每日奖励金币
	DefaultMode      string         `json:"default_mode"`       // 群组默认模式
	DefaultDropLimit int            `json:"default_drop_limit"` // 默认掉落消息阈值
	DropTimeout      int            `json:"drop_timeout"`       // 掉落超时（秒）
	CatchThreshold   float64        `json:"catch_threshold"`    // 名称匹配阈值
	RarityWeights    map[string]int `json:"rarity_weights"`     // 稀有度抽取权重
}

// SchedulerConfig 定时任务配置
type SchedulerConfig struct {
	DropSweep        bool `json:"drop_sweep"`        // 过期掉落清理
	DailyLeaderboard bool `json:"daily_leaderboard"` // 每日收集榜推送
	BackupDB         bool `json:"backup_db"`         // 数据库备份
}

// APIConfig Web API 配置
type APIConfig struct {
	Enabled      bool     `json:"enabled"`
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	AllowOrigins []string `json:"allow_origins"`
}

var (
	cfg     *Config
	cfgLock sync.RWMutex
)

// ErrInvalidWeights 稀有度权重非法
var ErrInvalidWeights = errors.New("rarity weights must be positive integers")

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// 设置默认值
	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	cfgLock.Lock()
	cfg = &config
	cfgLock.Unlock()

	return &config, nil
}

// Get 获取全局配置（线程安全）
func Get() *Config {
	cfgLock.RLock()
	defer cfgLock.RUnlock()
	return cfg
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// setDefaults 设置默认值
func (c *Config) setDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = 3306
	}
	if c.Database.BackupDir == "" {
		c.Database.BackupDir = "backup"
	}
	if c.Database.BackupMaxCount == 0 {
		c.Database.BackupMaxCount = 7
	}
	if c.Game.InitialCoins == 0 {
		c.Game.InitialCoins = 100
	}
	if c.Game.SummonCost == 0 {
		c.Game.SummonCost = 10
	}
	if c.Game.MultiSummonCount == 0 {
		c.Game.MultiSummonCount = 5
	}
	if c.Game.DailyReward == 0 {
		c.Game.DailyReward = 50
	}
	if c.Game.DefaultMode == "" {
		c.Game.DefaultMode = "waifu"
	}
	if c.Game.DefaultDropLimit == 0 {
		c.Game.DefaultDropLimit = 10
	}
	if c.Game.DropTimeout == 0 {
		c.Game.DropTimeout = 60
	}
	if c.Game.CatchThreshold == 0 {
		c.Game.CatchThreshold = 0.7
	}
	if len(c.Game.RarityWeights) == 0 {
		c.Game.RarityWeights = map[string]int{
			"Common":    50,
			"Uncommon":  30,
			"Rare":      15,
			"Epic":      4,
			"Legendary": 1,
		}
	}
	if c.API.Port == 0 {
		c.API.Port = 8838
	}
	if len(c.API.AllowOrigins) == 0 {
		c.API.AllowOrigins = []string{"*"}
	}
}

// validate 校验配置
func (c *Config) validate() error {
	for _, w := range c.Game.RarityWeights {
		if w <= 0 {
			return ErrInvalidWeights
		}
	}
	return nil
}

// IsAdmin 判断是否是管理员
func (c *Config) IsAdmin(userID int64) bool {
	if userID == c.Owner {
		return true
	}
	for _, admin := range c.Admins {
		if admin == userID {
			return true
		}
	}
	return false
}

// IsOwner 判断是否是 Owner
func (c *Config) IsOwner(userID int64) bool {
	return userID == c.Owner
}

// IsInGroup 判断群组是否在配置中
func (c *Config) IsInGroup(groupID int64) bool {
	for _, g := range c.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}

// configPath 存储配置文件路径
var configPath string

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	return configPath
}

// SetConfigPath 设置配置文件路径
func SetConfigPath(path string) {
	configPath = path
}

// Reload 重新加载配置文件
func Reload() (*Config, error) {
	if configPath == "" {
		return nil, nil
	}
	return Load(configPath)
}

// UpdateAndSave 更新配置并保存
func UpdateAndSave(updateFn func(*Config)) error {
	cfgLock.Lock()
	defer cfgLock.Unlock()

	if cfg == nil {
		return nil
	}

	updateFn(cfg)

	if configPath != "" {
		return cfg.Save(configPath)
	}

	return nil
}
