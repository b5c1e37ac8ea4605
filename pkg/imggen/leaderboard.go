// Package imggen 图片生成模块
package imggen

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// RankData 排行榜数据
type RankData struct {
	Rank     int
	Username string
	Distinct int64 // 不同角色数
	Total    int64 // 总份数
}

// LeaderboardConfig 排行榜图片配置
type LeaderboardConfig struct {
	Title       string
	Subtitle    string
	Items       []RankData
	GeneratedAt time.Time
}

// 颜色定义
var (
	bgColor      = color.RGBA{25, 25, 35, 255}    // 深色背景
	cardColor    = color.RGBA{35, 35, 50, 255}    // 卡片背景
	goldColor    = color.RGBA{255, 215, 0, 255}   // 金色
	silverColor  = color.RGBA{192, 192, 192, 255} // 银色
	bronzeColor  = color.RGBA{205, 127, 50, 255}  // 铜色
	textColor    = color.RGBA{255, 255, 255, 255} // 白色文字
	subTextColor = color.RGBA{180, 180, 180, 255} // 灰色文字
	accentColor  = color.RGBA{255, 105, 180, 255} // 粉色强调
	topBgColor   = color.RGBA{60, 30, 80, 255}    // 渐变起始
)

var (
	titleFace font.Face
	textFace  font.Face
	smallFace font.Face
)

func init() {
	if bold, err := truetype.Parse(gobold.TTF); err == nil {
		titleFace = truetype.NewFace(bold, &truetype.Options{Size: 26})
	}
	if regular, err := truetype.Parse(goregular.TTF); err == nil {
		textFace = truetype.NewFace(regular, &truetype.Options{Size: 18})
		smallFace = truetype.NewFace(regular, &truetype.Options{Size: 13})
	}
}

// GenerateLeaderboard 生成收藏排行榜图片
func GenerateLeaderboard(cfg LeaderboardConfig) ([]byte, error) {
	width := 600
	headerHeight := 120
	itemHeight := 70
	footerHeight := 50
	padding := 20

	itemCount := len(cfg.Items)
	if itemCount > 10 {
		itemCount = 10
	}

	height := headerHeight + itemCount*itemHeight + footerHeight + padding*2

	dc := gg.NewContext(width, height)

	drawBackground(dc, width, height)
	drawHeader(dc, width, cfg)

	startY := float64(headerHeight + padding)
	for i, item := range cfg.Items {
		if i >= 10 {
			break
		}
		drawRankItem(dc, width, startY+float64(i*itemHeight), item)
	}

	drawFooter(dc, width, height, cfg.GeneratedAt)

	return exportPNG(dc)
}

// drawBackground 绘制渐变背景
func drawBackground(dc *gg.Context, width, height int) {
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height)
		r := uint8(float64(topBgColor.R)*(1-t) + float64(bgColor.R)*t)
		g := uint8(float64(topBgColor.G)*(1-t) + float64(bgColor.G)*t)
		b := uint8(float64(topBgColor.B)*(1-t) + float64(bgColor.B)*t)
		dc.SetColor(color.RGBA{r, g, b, 255})
		dc.DrawRectangle(0, float64(y), float64(width), 1)
		dc.Fill()
	}
}

// drawHeader 绘制标题
func drawHeader(dc *gg.Context, width int, cfg LeaderboardConfig) {
	dc.SetColor(textColor)
	if titleFace != nil {
		dc.SetFontFace(titleFace)
	}
	dc.DrawStringAnchored(cfg.Title, float64(width)/2, 45, 0.5, 0.5)

	dc.SetColor(subTextColor)
	if textFace != nil {
		dc.SetFontFace(textFace)
	}
	dc.DrawStringAnchored(cfg.Subtitle, float64(width)/2, 80, 0.5, 0.5)

	dc.SetColor(accentColor)
	dc.SetLineWidth(2)
	dc.DrawLine(50, 110, float64(width-50), 110)
	dc.Stroke()
}

// drawRankItem 绘制排行榜条目
func drawRankItem(dc *gg.Context, width int, y float64, item RankData) {
	cardX := 20.0
	cardY := y
	cardW := float64(width - 40)
	cardH := 60.0

	dc.SetColor(color.RGBA{cardColor.R, cardColor.G, cardColor.B, 200})
	dc.DrawRoundedRectangle(cardX, cardY, cardW, cardH, 10)
	dc.Fill()

	rankX := cardX + 35
	rankY := cardY + cardH/2

	var rankColor color.RGBA
	switch item.Rank {
	case 1:
		rankColor = goldColor
	case 2:
		rankColor = silverColor
	case 3:
		rankColor = bronzeColor
	default:
		rankColor = subTextColor
	}

	dc.SetColor(rankColor)
	if titleFace != nil {
		dc.SetFontFace(titleFace)
	}
	dc.DrawStringAnchored(fmt.Sprintf("%d", item.Rank), rankX, rankY, 0.5, 0.5)

	dc.SetColor(textColor)
	if textFace != nil {
		dc.SetFontFace(textFace)
	}
	dc.DrawStringAnchored(item.Username, cardX+100, rankY-10, 0, 0.5)

	dc.SetColor(subTextColor)
	if smallFace != nil {
		dc.SetFontFace(smallFace)
	}
	statsText := fmt.Sprintf("%d characters | %d total", item.Distinct, item.Total)
	dc.DrawStringAnchored(statsText, cardX+100, rankY+12, 0, 0.5)

	dc.SetColor(accentColor)
	dc.DrawCircle(cardX+cardW-30, rankY, 5)
	dc.Fill()
}

// drawFooter 绘制底部
func drawFooter(dc *gg.Context, width, height int, generatedAt time.Time) {
	dc.SetColor(subTextColor)
	if smallFace != nil {
		dc.SetFontFace(smallFace)
	}
	footerText := fmt.Sprintf("Generated %s | Waifu Collector", generatedAt.Format("2006-01-02 15:04"))
	dc.DrawStringAnchored(footerText, float64(width)/2, float64(height-25), 0.5, 0.5)
}

// exportPNG 导出为 PNG
func exportPNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return buf.Bytes(), nil
}
