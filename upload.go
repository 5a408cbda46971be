package resultgen

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goware/urlx"
)

// ParseHost cleans up a user-supplied host so bare hostnames and host:port
// pairs both work. A missing scheme falls back to the value of the insecure
// flag, and a missing port defaults to the OTLP/HTTP port.
func ParseHost(host string, insecure bool) (*url.URL, error) {
	defaultScheme := "https"
	if insecure {
		defaultScheme = "http"
	}
	u, err := urlx.ParseWithDefaultScheme(host, defaultScheme)
	if err != nil {
		return nil, fmt.Errorf("unable to parse host %s: %w", host, err)
	}
	if u.Port() == "" {
		u.Host = fmt.Sprintf("%s:4318", u.Host) // default OTLP/HTTP port
	}
	return u, nil
}

// Uploader posts trace export documents to an OTLP/HTTP traces endpoint.
// Any failure is returned to the caller and treated as fatal; there is no
// retry, this is load-test fuel and a broken target ends the run.
type Uploader struct {
	endpoint string
	client   *http.Client
	log      Logger
	count    int
}

func NewUploader(log Logger, host *url.URL) *Uploader {
	return &Uploader{
		endpoint: fmt.Sprintf("%s://%s/v1/traces", host.Scheme, host.Host),
		client:   &http.Client{},
		log:      log,
	}
}

func (u *Uploader) Upload(payload []byte) error {
	resp, err := u.client.Post(u.endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload to %s failed: %s", u.endpoint, resp.Status)
	}
	u.count++
	u.log.Debug("uploaded %d trace payloads\n", u.count)
	return nil
}
