// Package images 图片 URL 校验客户端
package images

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

var (
	ErrNotHTTP     = errors.New("图片地址必须是 http(s) 链接")
	ErrUnreachable = errors.New("图片地址无法访问")
	ErrNotImage    = errors.New("链接内容不是图片")
)

// Client 图片校验客户端
type Client struct {
	httpClient *resty.Client
}

var (
	instance *Client
	once     sync.Once
)

// GetClient 获取客户端单例
func GetClient() *Client {
	once.Do(func() {
		instance = NewClient()
	})
	return instance
}

// NewClient 创建图片校验客户端
func NewClient() *Client {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(1 * time.Second)
	client.SetHeader("User-Agent", "WaifuCollector/1.0 Go")

	return &Client{httpClient: client}
}

// Validate 校验图片 URL 可达且内容是图片
func (c *Client) Validate(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return ErrNotHTTP
	}

	resp, err := c.httpClient.R().Head(url)
	if err != nil {
		logger.Debug().Err(err).Str("url", url).Msg("图片 HEAD 请求失败")
		return ErrUnreachable
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return ErrUnreachable
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		// 部分图床 HEAD 不回 Content-Type，只有明确非图片才拒绝
		return ErrNotImage
	}
	return nil
}
