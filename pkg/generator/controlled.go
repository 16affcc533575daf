package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
	defaultRateBurst       = 2
	defaultMaxRetries      = 3
	defaultBaseBackoff     = 500 * time.Millisecond
	defaultMaxBackoff      = 10 * time.Second
)

// Options は ControlledGenerator の呼び出し制御です。ゼロ値の項目は既定値になります。
type Options struct {
	// RateInterval が正ならその間隔でリクエストを間引きます。
	RateInterval time.Duration
	RateBurst    int
	MaxRetries   uint64
	BaseBackoff  time.Duration
	MaxBackoff   time.Duration
	// CacheTTL が負ならキャッシュを使いません。
	CacheTTL time.Duration
}

// ControlledGenerator は別の TextGenerator に流量制限、リトライ、応答キャッシュを加えます。
// 複数のゴルーチンから同時に呼び出せます。
type ControlledGenerator struct {
	next    TextGenerator
	limiter *rate.Limiter
	cache   *cache.Cache
	opts    Options
}

// NewControlledGenerator は ControlledGenerator を初期化します。
func NewControlledGenerator(next TextGenerator, opts Options) *ControlledGenerator {
	if opts.RateBurst <= 0 {
		opts.RateBurst = defaultRateBurst
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaultBaseBackoff
	}
	if opts.MaxBackoff <= 0 {
		opts.MaxBackoff = defaultMaxBackoff
	}

	g := &ControlledGenerator{next: next, opts: opts}
	if opts.RateInterval > 0 {
		g.limiter = rate.NewLimiter(rate.Every(opts.RateInterval), opts.RateBurst)
	}
	if opts.CacheTTL >= 0 {
		ttl := opts.CacheTTL
		if ttl == 0 {
			ttl = defaultCacheExpiration
		}
		g.cache = cache.New(ttl, cacheCleanupInterval)
	}
	return g
}

// Generate はキャッシュを確認し、無ければ制限内でリトライしながら生成します。
func (g *ControlledGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := cacheKey(prompt)
	if g.cache != nil {
		if v, ok := g.cache.Get(key); ok {
			slog.DebugContext(ctx, "生成結果をキャッシュから返します", "key", key[:12])
			return v.(string), nil
		}
	}

	backoff := retry.NewExponential(g.opts.BaseBackoff)
	backoff = retry.WithCappedDuration(g.opts.MaxBackoff, backoff)
	backoff = retry.WithMaxRetries(g.opts.MaxRetries, backoff)

	attempt := 0
	var text string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("リミッター待機中にエラーが発生しました: %w", err)
			}
		}

		var callErr error
		text, callErr = g.next.Generate(ctx, prompt)
		if callErr == nil {
			return nil
		}
		// 呼び出し単位のタイムアウトは再試行し、全体の取り消しは再試行しません。
		if ctx.Err() != nil || errors.Is(callErr, context.Canceled) {
			return callErr
		}
		slog.WarnContext(ctx, "生成に失敗したため再試行します", "attempt", attempt, "error", callErr)
		return retry.RetryableError(callErr)
	})
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗しました (%d回試行): %w", attempt, err)
	}

	if g.cache != nil {
		g.cache.Set(key, text, cache.DefaultExpiration)
	}
	return text, nil
}

func cacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
