package jsplugin

import (
	"io"
	"net/http"
	"time"
)

// hostHTTPTimeout bounds every plugin-initiated request so a slow or
// hanging remote host can't stall the evaluator indefinitely.
const hostHTTPTimeout = 5 * time.Second

var httpClient = &http.Client{Timeout: hostHTTPTimeout}

// hostHTTPGet is exposed to plugin scripts as `httpGet(url)`, returning
// the response body as a string or throwing on any transport/status
// error (goja converts a returned Go error into a thrown JS exception).
func hostHTTPGet(url string) (string, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
