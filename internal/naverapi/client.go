package naverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.commerce.naver.com"

	searchPath        = "/external/v1/products/search"
	originProductPath = "/external/v2/products/origin-products/%d"

	// 商品検索の1ページあたり件数
	searchPageSize = 500

	// 検索期間の起点（商品登録日ベース、固定）
	searchFromDate = "2024-10-01"
)

// 検索結果1件分のチャネル商品。コマンド応答にそのまま返す。
type ChannelProduct struct {
	OriginProductNo      int64  `json:"originProductNo"`
	Name                 string `json:"name"`
	SellerManagementCode string `json:"sellerManagementCode"`
	SalePrice            int64  `json:"salePrice"`
}

type SearchContent struct {
	ChannelProducts []ChannelProduct `json:"channelProducts"`
}

type SearchPage struct {
	Contents   []SearchContent `json:"contents"`
	TotalPages int             `json:"totalPages"`
}

type searchRequest struct {
	SellerManagementCode string   `json:"sellerManagementCode"`
	ProductStatusTypes   []string `json:"productStatusTypes"`
	Page                 int      `json:"page"`
	Size                 int      `json:"size"`
	OrderType            string   `json:"orderType"`
	PeriodType           string   `json:"periodType"`
	FromDate             string   `json:"fromDate"`
	ToDate               string   `json:"toDate"`
}

type originProductEnvelope struct {
	OriginProduct OriginProduct `json:"originProduct"`
}

// ネイバーコマースAPIのHTTPクライアント。状態は持たない。
type Client struct {
	baseURL    string
	tokens     TokenProvider
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
	}
}

// 販売中商品の検索。pageは1始まり。
func (c *Client) SearchProductPage(ctx context.Context, page int) (SearchPage, error) {
	body := searchRequest{
		SellerManagementCode: "",
		ProductStatusTypes:   []string{"SALE"},
		Page:                 page,
		Size:                 searchPageSize,
		OrderType:            "NO",
		PeriodType:           "PROD_REG_DAY",
		FromDate:             searchFromDate,
		ToDate:               c.now().Format("2006-01-02"),
	}

	var result SearchPage
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+searchPath, body, &result); err != nil {
		return SearchPage{}, err
	}
	return result, nil
}

// 原商品の取得。応答のoriginProductをそのまま返す。
func (c *Client) GetOriginProduct(ctx context.Context, originProductNo int64) (OriginProduct, error) {
	url := c.baseURL + fmt.Sprintf(originProductPath, originProductNo)

	var envelope originProductEnvelope
	if err := c.doJSON(ctx, http.MethodGet, url, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.OriginProduct == nil {
		return nil, fmt.Errorf("origin product %d: missing originProduct in response", originProductNo)
	}
	return envelope.OriginProduct, nil
}

// 原商品の全量更新（部分更新はできないので取得→書き換え→PUT）。
func (c *Client) UpdateOriginProduct(ctx context.Context, originProductNo int64, product OriginProduct) error {
	url := c.baseURL + fmt.Sprintf(originProductPath, originProductNo)
	return c.doJSON(ctx, http.MethodPut, url, originProductEnvelope{OriginProduct: product}, nil)
}

func (c *Client) DeleteOriginProduct(ctx context.Context, originProductNo int64) error {
	url := c.baseURL + fmt.Sprintf(originProductPath, originProductNo)
	return c.doJSON(ctx, http.MethodDelete, url, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, url string, body any, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s %s: unexpected status %s: %s", method, url, resp.Status, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
