package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 2000
	DefaultSlideCount     = 10
	DefaultSearchResults  = 10
	DefaultConcurrency    = 1
	DefaultRateInterval   = 1 * time.Second
	DefaultRequestTimeout = 60 * time.Second
)

// Config は Go Slide Kit の各 Runner を動作させるための基本設定です。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string
	Temperature float32
	MaxTokens   int

	// --- API Keys ---
	GeminiAPIKey string
	SerpAPIKey   string

	// --- Deck Settings ---
	SlideCount    int
	SearchResults int

	// --- Concurrency & Rate Limit ---
	// Concurrency は詳細コンテンツ生成の同時実行数です。1 なら逐次実行です。
	Concurrency  int
	RateInterval time.Duration

	// --- Timeout ---
	RequestTimeout time.Duration
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		Temperature:    DefaultTemperature,
		MaxTokens:      DefaultMaxTokens,
		SlideCount:     DefaultSlideCount,
		SearchResults:  DefaultSearchResults,
		Concurrency:    DefaultConcurrency,
		RateInterval:   DefaultRateInterval,
		RequestTimeout: DefaultRequestTimeout,
	}
}
