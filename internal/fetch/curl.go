package fetch

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// curl -f reports HTTP errors as "The requested URL returned error: 404".
var curlHTTPErrorPattern = regexp.MustCompile(`returned error: (\d{3})`)

// CurlFetcher shells out to curl. FootballDB blocks Go's HTTP client
// fingerprint; curl with a browser User-Agent works reliably.
type CurlFetcher struct {
	userAgent string
	timeout   string // curl -m value in seconds
}

// NewCurlFetcher builds a curl-backed fetcher with a 30s timeout.
func NewCurlFetcher(userAgent string) *CurlFetcher {
	return &CurlFetcher{userAgent: userAgent, timeout: "30"}
}

// Fetch runs curl -sSf -L and returns the body. HTTP error statuses make
// curl exit non-zero (-f), so error pages never come back as markup; those
// and other non-zero exits become *Failure.
func (f *CurlFetcher) Fetch(ctx context.Context, url string) (string, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-S", "-f", "-L", "-m", f.timeout,
		"-A", f.userAgent, url)

	output, err := cmd.Output()
	if err != nil {
		reason := err.Error()
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			reason = strings.TrimSpace(string(exitErr.Stderr))
			if m := curlHTTPErrorPattern.FindStringSubmatch(reason); m != nil {
				status, _ := strconv.Atoi(m[1])
				return "", &Failure{URL: url, StatusCode: status}
			}
		}
		return "", &Failure{URL: url, Reason: "curl: " + reason}
	}

	body := string(output)
	if strings.TrimSpace(body) == "" {
		return "", &Failure{URL: url, Reason: "empty response"}
	}
	return body, nil
}
