// Package service 角色录入解析测试
package service

import (
	"errors"
	"testing"

	"github.com/smysle/waifu-collector-go/internal/database/models"
)

func TestParseAddInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"完整四段", "Rem | Re:Zero | waifu | Rare", nil},
		{"带图片链接", "Rem | Re:Zero | waifu | Rare | https://img.example.com/rem.png", nil},
		{"带图片和描述", "Rem | Re:Zero | waifu | Rare | https://x.co/a.png | 蓝发女仆", nil},
		{"类别大小写不敏感", "Levi | AoT | HUSBANDO | Epic", nil},
		{"段数不足", "Rem | Re:Zero | waifu", ErrBadFormat},
		{"名字为空", " | Re:Zero | waifu | Rare", ErrBadFormat},
		{"作品为空", "Rem |  | waifu | Rare", ErrBadFormat},
		{"非法类别", "Rem | Re:Zero | robot | Rare", ErrBadGender},
		{"非法稀有度", "Rem | Re:Zero | waifu | Mythic", ErrBadRarity},
		{"稀有度区分大小写", "Rem | Re:Zero | waifu | rare", ErrBadRarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			character, err := ParseAddInput(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseAddInput(%q) err = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAddInput(%q) 意外出错: %v", tt.input, err)
			}
			if character.Name == "" || character.Series == "" {
				t.Error("解析结果缺少名字或作品")
			}
		})
	}
}

func TestParseAddInput_Fields(t *testing.T) {
	character, err := ParseAddInput("Rem | Re:Zero | waifu | Rare | https://x.co/a.png | 蓝发女仆")
	if err != nil {
		t.Fatal(err)
	}

	if character.Name != "Rem" {
		t.Errorf("Name = %q", character.Name)
	}
	if character.Series != "Re:Zero" {
		t.Errorf("Series = %q", character.Series)
	}
	if character.Gender != models.ModeWaifu {
		t.Errorf("Gender = %q", character.Gender)
	}
	if character.Rarity != models.RarityRare {
		t.Errorf("Rarity = %q", character.Rarity)
	}
	if character.ImageURL != "https://x.co/a.png" {
		t.Errorf("ImageURL = %q", character.ImageURL)
	}
	if character.Description != "蓝发女仆" {
		t.Errorf("Description = %q", character.Description)
	}
}
