// Package service 召唤服务测试
package service

import (
	"math"
	"math/rand"
	"testing"

	"github.com/smysle/waifu-collector-go/internal/database/models"
)

func TestDrawRarity_Distribution(t *testing.T) {
	weights := map[string]int{
		"Common":    50,
		"Uncommon":  30,
		"Rare":      15,
		"Epic":      4,
		"Legendary": 1,
	}

	rng := rand.New(rand.NewSource(42))
	const draws = 100000

	counts := make(map[models.Rarity]int)
	for i := 0; i < draws; i++ {
		counts[DrawRarity(rng, weights)]++
	}

	total := 0
	for _, w := range weights {
		total += w
	}

	// 10 万次抽取下各档位频率应收敛到权重占比，允许 1.5 个百分点偏差
	for _, r := range models.Rarities {
		expected := float64(weights[string(r)]) / float64(total)
		actual := float64(counts[r]) / float64(draws)
		if math.Abs(actual-expected) > 0.015 {
			t.Errorf("稀有度 %s 频率 %.4f，期望约 %.4f", r, actual, expected)
		}
	}
}

func TestDrawRarity_ZeroWeightExcluded(t *testing.T) {
	weights := map[string]int{
		"Common":    0,
		"Uncommon":  0,
		"Rare":      0,
		"Epic":      0,
		"Legendary": 5,
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		if got := DrawRarity(rng, weights); got != models.RarityLegendary {
			t.Fatalf("权重为零的档位不应被抽中，抽到了 %s", got)
		}
	}
}

func TestDrawRarity_EmptyWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := DrawRarity(rng, map[string]int{}); got != models.RarityCommon {
		t.Errorf("空权重表应回落到 Common，得到 %s", got)
	}
}

func TestDrawRarity_Deterministic(t *testing.T) {
	weights := map[string]int{"Common": 50, "Rare": 50}

	a := rand.New(rand.NewSource(99))
	b := rand.New(rand.NewSource(99))
	for i := 0; i < 100; i++ {
		if DrawRarity(a, weights) != DrawRarity(b, weights) {
			t.Fatal("相同种子应产生相同序列")
		}
	}
}
