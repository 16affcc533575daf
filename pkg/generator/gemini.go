// Package generator は Gemini によるテキスト生成と、その呼び出し制御を提供します。
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// ErrEmptyResponse はモデルが空のテキストを返した場合のエラーです。
var ErrEmptyResponse = errors.New("モデルの応答が空です")

const (
	// 再試行の本体は ControlledGenerator が担うため、クライアント側の待機は短くします。
	clientMaxRetries   = 1
	clientInitialDelay = 2 * time.Second
	clientMaxDelay     = 10 * time.Second
)

// GeminiConfig は Gemini クライアントの設定です。
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	// MaxTokens は gemini クライアントに出力上限の指定が無いため、検証済みの設定値として保持するだけです。
	MaxTokens   int

	// Timeout が正なら1回の呼び出しごとに適用します。
	Timeout time.Duration
}

// GeminiClient は Gemini API を1回呼び出す TextGenerator です。
type GeminiClient struct {
	client  gemini.ContentGenerator
	model   string
	timeout time.Duration
}

// NewGeminiClient は go-gemini-client を使って Gemini API バックエンドのクライアントを初期化します。
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Gemini APIキーが設定されていません")
	}
	clientConfig := gemini.Config{
		APIKey:       cfg.APIKey,
		Temperature:  genai.Ptr(cfg.Temperature),
		MaxRetries:   clientMaxRetries,
		InitialDelay: clientInitialDelay,
		MaxDelay:     clientMaxDelay,
	}
	client, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return NewGeminiClientWith(client, cfg.Model, cfg.Timeout), nil
}

// NewGeminiClientWith は初期化済みの ContentGenerator を TextGenerator として包みます。
func NewGeminiClientWith(client gemini.ContentGenerator, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{client: client, model: model, timeout: timeout}
}

// Generate はプロンプトを送信し、応答テキストの前後の空白を除いて返します。
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	resp, err := c.client.GenerateContent(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("コンテンツ生成に失敗しました (model: %s): %w", c.model, err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
