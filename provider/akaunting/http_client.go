package akaunting

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type client struct {
	httpClient *http.Client
	email      string
	password   string
	apiKey     string
}

func newClient(email, password, apiKey string) *client {
	return &client{
		httpClient: &http.Client{},
		email:      email,
		password:   password,
		apiKey:     apiKey,
	}
}

// do performs one API call and returns the status code with the raw body.
// Non-2xx statuses are not an error here; callers decide what they mean.
func (c *client) do(method, link string, in interface{}) (int, []byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, errors.Wrap(err, "failed marshal")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, link, body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed new request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(c.email, c.password)
	if c.apiKey != "" {
		req.Header.Set("X-ApiKey", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "failed do request")
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, errors.Wrap(err, "failed read all body")
	}
	return resp.StatusCode, b, nil
}

// POSTAndUnmarshalJson expects a 2xx reply and decodes the body into out.
func (c *client) POSTAndUnmarshalJson(link string, in, out interface{}) (int, error) {
	status, b, err := c.do("POST", link, in)
	if err != nil {
		return status, err
	}
	if !is2xx(status) {
		return status, newRequestError(status, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return status, errors.Wrap(err, "failed unmarshal")
	}
	return status, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}
