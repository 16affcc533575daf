package search

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultEndpoint = "https://serpapi.com/search.json"
	sourceName      = "SerpAPI"
	maxResults      = 100
	defaultTimeout  = 30 * time.Second

	// 検索結果が0件のとき SerpAPI は 200 でこの文言を返します。
	noResultsMessage = "hasn't returned any results"
)

type serpResponse struct {
	Error          string `json:"error"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

// SerpClient は SerpAPI の Google 検索を呼び出す Searcher です。
type SerpClient struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// NewSerpClient は新しい SerpClient を作成します。
// 通信エラーと 429/5xx は resty のリトライに任せます。
func NewSerpClient(apiKey string) *SerpClient {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)
	client.AddRetryCondition(retryCondition)

	return &SerpClient{
		client:   client,
		apiKey:   apiKey,
		endpoint: DefaultEndpoint,
	}
}

// WithEndpoint は接続先を差し替えた SerpClient を返します。
func (c *SerpClient) WithEndpoint(endpoint string) *SerpClient {
	cp := *c
	cp.endpoint = endpoint
	return &cp
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

// Search は organic_results を最大 limit 件まで返します。
func (c *SerpClient) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	var out serpResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       query,
			"api_key": c.apiKey,
			"num":     strconv.Itoa(min(limit, maxResults)),
			"hl":      "en",
			"gl":      "us",
		}).
		SetResult(&out).
		SetError(&out).
		Get(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("SerpAPIへのリクエストに失敗しました: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("SerpAPIがエラーを返しました (status %d): %s", resp.StatusCode(), out.Error)
	}
	if out.Error != "" && !strings.Contains(out.Error, noResultsMessage) {
		return nil, fmt.Errorf("SerpAPIがエラーを返しました: %s", out.Error)
	}

	results := make([]Result, 0, len(out.OrganicResults))
	for _, item := range out.OrganicResults {
		results = append(results, Result{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
			Source:  sourceName,
		})
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
