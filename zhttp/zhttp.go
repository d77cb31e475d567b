package zhttp

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "groupsum (+https://github.com/greyh4t/groupsum)"

type Zhttp struct {
	client *http.Client
}

func New(timeout time.Duration, proxy string, skipVerify bool) (*Zhttp, error) {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if skipVerify {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if proxy != "" {
		p, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy: %w", err)
		}
		t.Proxy = http.ProxyURL(p)
	}

	zhttp := &Zhttp{
		client: &http.Client{
			Timeout:   timeout,
			Transport: t,
		},
	}

	return zhttp, nil
}

// Get fetches url, trying at most retry times while the request fails or the
// server answers 5xx. The last status code and body are returned.
func (zhttp *Zhttp) Get(url string, headers map[string]string, retry int) (code int, body []byte, err error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if retry <= 0 {
		retry = 1
	}

	for retry > 0 {
		retry--
		code, body, err = zhttp.get(req)
		if err == nil && code/100 != 5 {
			return code, body, nil
		}
	}

	return
}

func (zhttp *Zhttp) get(req *http.Request) (int, []byte, error) {
	resp, err := zhttp.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}
