package naverapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// アクセストークンの取得だけを約束。
// 取得失敗はそのコマンド全体の失敗として扱う。
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

const tokenPath = "/external/v1/oauth2/token"

// client_credentialsでBearerトークンを取得するTokenProvider。
// 署名は clientID_timestamp をbcryptでハッシュしてbase64にしたもの。
// トークンは期限の少し手前までキャッシュする。
type SignatureTokenProvider struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	now func() time.Time
}

func NewSignatureTokenProvider(baseURL, clientID, clientSecret string) *SignatureTokenProvider {
	return &SignatureTokenProvider{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		now:          time.Now,
	}
}

func (p *SignatureTokenProvider) AccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// 期限1分前までは使い回す
	if p.token != "" && p.now().Add(time.Minute).Before(p.expiresAt) {
		return p.token, nil
	}

	token, expiresIn, err := p.requestToken(ctx)
	if err != nil {
		return "", err
	}

	p.token = token
	p.expiresAt = p.now().Add(time.Duration(expiresIn) * time.Second)
	return p.token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (p *SignatureTokenProvider) requestToken(ctx context.Context) (string, int64, error) {
	timestamp := p.now().UnixMilli()
	sign, err := p.signature(timestamp)
	if err != nil {
		return "", 0, fmt.Errorf("sign client secret: %w", err)
	}

	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("timestamp", strconv.FormatInt(timestamp, 10))
	form.Set("client_secret_sign", sign)
	form.Set("grant_type", "client_credentials")
	form.Set("type", "SELF")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("request access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("request access token: unexpected status %s", resp.Status)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", 0, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", 0, fmt.Errorf("request access token: empty token in response")
	}
	return tr.AccessToken, tr.ExpiresIn, nil
}

func (p *SignatureTokenProvider) signature(timestamp int64) (string, error) {
	password := fmt.Sprintf("%s_%d", p.clientID, timestamp)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hashed), nil
}
