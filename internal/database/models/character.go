// Package models 数据模型 - 角色
package models

import (
	"time"
)

// Rarity 稀有度等级
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// Rarities 按稀有度从高到低排列
var Rarities = []Rarity{
	RarityLegendary,
	RarityEpic,
	RarityRare,
	RarityUncommon,
	RarityCommon,
}

// ValidRarity 判断稀有度标签是否合法
func ValidRarity(rarity string) bool {
	for _, r := range Rarities {
		if string(r) == rarity {
			return true
		}
	}
	return false
}

// Emoji 稀有度对应的显示图标
func (r Rarity) Emoji() string {
	switch r {
	case RarityLegendary:
		return "🟡"
	case RarityEpic:
		return "🟣"
	case RarityRare:
		return "🔵"
	case RarityUncommon:
		return "🟢"
	default:
		return "⚪"
	}
}

// Character 角色表（唯一权威目录，插入后不可变）
type Character struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;size:255;not null;index" json:"name"`
	Series      string    `gorm:"column:series;size:255;not null;index" json:"series"`
	Gender      GroupMode `gorm:"column:gender;size:16;not null;index" json:"gender"`
	Rarity      Rarity    `gorm:"column:rarity;size:16;not null;index" json:"rarity"`
	ImageURL    string    `gorm:"column:image_url;size:1024" json:"image_url,omitempty"`
	Description string    `gorm:"column:description;size:1024" json:"description,omitempty"`
	AddedBy     int64     `gorm:"column:added_by" json:"added_by"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName 表名
func (Character) TableName() string {
	return "characters"
}

// HasImage 是否有图片
func (c *Character) HasImage() bool {
	return c.ImageURL != ""
}

// Card 格式化角色卡片文本
func (c *Character) Card() string {
	text := "🍎 Name: " + c.Name + "\n" +
		"📚 Series: " + c.Series + "\n" +
		"🎭 Type: " + titleMode(c.Gender) + "\n" +
		"✨ Rarity: " + c.Rarity.Emoji() + " " + string(c.Rarity)
	if c.Description != "" {
		text += "\n💭 " + c.Description
	}
	return text
}

func titleMode(m GroupMode) string {
	switch m {
	case ModeWaifu:
		return "Waifu"
	case ModeHusbando:
		return "Husbando"
	default:
		return string(m)
	}
}
