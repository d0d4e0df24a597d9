package httputils

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"
)

// RequestInfo is a container with per-request metadata used in logs.
type RequestInfo struct {
	RealIP    string
	ProxyIPs  []string
	UserAgent string
	RequestID string
}

// FromRequest extracts RequestInfo from the incoming request headers,
// generating a request id when the caller did not send one.
func FromRequest(req *http.Request) (res RequestInfo) {
	if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
		ipsl := strings.Split(xff, ", ")
		res.RealIP = ipsl[0]
		if len(ipsl) > 1 {
			res.ProxyIPs = ipsl[1:]
		}
	}
	if res.RealIP == "" && req.RemoteAddr != "" {
		res.ProxyIPs = []string{strings.Split(req.RemoteAddr, ":")[0]}
	}
	res.UserAgent = req.Header.Get("User-Agent")
	res.RequestID = req.Header.Get("X-Request-Id")
	if res.RequestID == "" {
		res.RequestID = appCreatedRequestID()
	}
	return res
}

func (ri RequestInfo) FirstProxyIP() string {
	if len(ri.ProxyIPs) > 0 {
		return ri.ProxyIPs[0]
	}
	return ""
}

// application created
// ac-2006-01-02T15:04:05.000-XXX###XXX
func appCreatedRequestID() string {
	return "ac-" + time.Now().Format("2006-01-02T15:04:05.000") + randString(9)
}

func randString(len int) string {
	b := make([]byte, len)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
