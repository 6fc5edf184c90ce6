package passstatus

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// HTTPSource memanggil Password Status API dan Live Password API lewat HTTP.
// Admin butuh data hidup, bukan snapshot cache, jadi setiap request membawa
// directive no-store/no-cache plus query param pemecah cache.
type HTTPSource struct {
	StatusURL string
	LiveURL   string
	Client    *http.Client
}

func NewHTTPSource(statusURL, liveURL string) *HTTPSource {
	return &HTTPSource{
		StatusURL: statusURL,
		LiveURL:   liveURL,
		Client:    &http.Client{},
	}
}

type statusRequest struct {
	UserIDs []string `json:"userIds"`
}

type statusResult struct {
	ID                 string     `json:"id"`
	PasswordChanged    bool       `json:"passwordChanged"`
	LastPasswordChange *time.Time `json:"lastPasswordChange,omitempty"`
}

type statusResponse struct {
	Results []statusResult `json:"results"`
}

func (s *HTTPSource) CheckStatus(ctx context.Context, userIDs []string) (map[string]Status, error) {
	var resp statusResponse
	if err := s.post(ctx, s.StatusURL, statusRequest{UserIDs: userIDs}, &resp); err != nil {
		return nil, err
	}

	out := make(map[string]Status, len(resp.Results))
	for _, r := range resp.Results {
		out[r.ID] = Status{Changed: r.PasswordChanged, LastChange: r.LastPasswordChange}
	}
	return out, nil
}

type liveRequest struct {
	UserID string `json:"userId"`
}

func (s *HTTPSource) FetchLive(ctx context.Context, userID string) (Live, error) {
	var resp Live
	if err := s.post(ctx, s.LiveURL, liveRequest{UserID: userID}, &resp); err != nil {
		return Live{}, err
	}
	return resp, nil
}

func (s *HTTPSource) post(ctx context.Context, rawURL string, body, out any) error {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, bustCache(rawURL), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store, no-cache")
	req.Header.Set("Pragma", "no-cache")

	res, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("status %d dari %s", res.StatusCode, rawURL)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, out)
}

// bustCache menambahkan query param t=<unix nano> supaya proxy/CDN tidak
// mengembalikan response lama.
func bustCache(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(time.Now().UnixNano(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}
