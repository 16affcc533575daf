package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"

	kitconfig "github.com/shouni/go-slide-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultModel          = kitconfig.DefaultGeminiModel
	DefaultOutputFile     = "presentation.pptx"
	DefaultTheme          = "default"
	DefaultHTTPTimeout    = kitconfig.DefaultRequestTimeout
	DefaultRateInterval   = kitconfig.DefaultRateInterval
	defaultTemperature    = "0.7"
	defaultMaxTokens      = "2000"
	defaultSearchResults  = "10"
	defaultSlideCount     = "10"
	defaultEnvFile        = ".env"
	geminiAPIKeyEnv       = "GOOGLE_API_KEY"
	geminiAPIKeyEnvLegacy = "GEMINI_API_KEY"
)

var validate = validator.New()

// Config はアプリケーション全体の環境設定（APIキーや生成パラメータ）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey      string
	SerpAPIKey        string
	GeminiModel       string  `validate:"required"`
	Temperature       float64 `validate:"gte=0,lte=2"`
	MaxTokens         int     `validate:"gt=0"`
	MaxSearchResults  int     `validate:"gt=0"`
	DefaultSlideCount int     `validate:"gt=0"`

	// Options は CLI から後で設定され、GenerateOptions.Validate で別に検証するのだ。
	Options GenerateOptions `validate:"-"`
}

// LoadConfig は .env と環境変数から設定を読み込み、検証して返すのだ！
// .env が無いのはエラーではないのだ。
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s の読み込みに失敗しました: %w", defaultEnvFile, err)
	}

	cfg := &Config{
		GeminiAPIKey: env(geminiAPIKeyEnv, env(geminiAPIKeyEnvLegacy, "")),
		SerpAPIKey:   envutil.GetEnv("SERP_API_KEY", ""),
		GeminiModel:  env("GEMINI_MODEL", DefaultModel),
	}

	var err error
	if cfg.Temperature, err = strconv.ParseFloat(env("TEMPERATURE", defaultTemperature), 64); err != nil {
		return nil, fmt.Errorf("TEMPERATURE が数値ではありません: %w", err)
	}
	if cfg.MaxTokens, err = envInt("MAX_TOKENS", defaultMaxTokens); err != nil {
		return nil, err
	}
	if cfg.MaxSearchResults, err = envInt("MAX_SEARCH_RESULTS", defaultSearchResults); err != nil {
		return nil, err
	}
	if cfg.DefaultSlideCount, err = envInt("DEFAULT_SLIDE_COUNT", defaultSlideCount); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("環境設定の検証に失敗しました: %w", err)
	}
	return cfg, nil
}

// env は空文字の設定も未設定として扱うのだ。
func env(key, def string) string {
	if v := strings.TrimSpace(envutil.GetEnv(key, def)); v != "" {
		return v
	}
	return def
}

func envInt(key, def string) (int, error) {
	v, err := strconv.Atoi(env(key, def))
	if err != nil {
		return 0, fmt.Errorf("%s が整数ではありません: %w", key, err)
	}
	return v, nil
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// 入出力 (TOPIC, --output, --theme, --theme-file)
	Topic      string `validate:"required"`
	OutputFile string `validate:"required"`
	Theme      string
	ThemeFile  string

	// デッキの規模 (--slides, --search-results)
	Slides        int `validate:"gt=0"`
	SearchResults int `validate:"gt=0"`

	// AI挙動設定 (--model, --concurrency)
	AIModel     string
	Concurrency int `validate:"gt=0"`

	// 実行制御 (--verbose, --http-timeout)
	Verbose     bool
	HTTPTimeout time.Duration
}

// Validate は CLI オプションを検証するのだ。
func (o GenerateOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("オプションが不正です: %w", err)
	}
	return nil
}

// RunnerConfig は pkg 側の Runner に渡す設定に詰め替えるのだ。
// CLI で指定された値が環境設定より優先されるのだ。
func (c *Config) RunnerConfig() kitconfig.Config {
	rc := kitconfig.DefaultConfig()
	rc.GeminiAPIKey = c.GeminiAPIKey
	rc.SerpAPIKey = c.SerpAPIKey
	rc.GeminiModel = c.GeminiModel
	rc.Temperature = float32(c.Temperature)
	rc.MaxTokens = c.MaxTokens
	rc.SlideCount = c.DefaultSlideCount
	rc.SearchResults = c.MaxSearchResults

	o := c.Options
	if o.AIModel != "" {
		rc.GeminiModel = o.AIModel
	}
	if o.Slides > 0 {
		rc.SlideCount = o.Slides
	}
	if o.SearchResults > 0 {
		rc.SearchResults = o.SearchResults
	}
	if o.Concurrency > 0 {
		rc.Concurrency = o.Concurrency
	}
	if o.HTTPTimeout > 0 {
		rc.RequestTimeout = o.HTTPTimeout
	}
	return rc
}
