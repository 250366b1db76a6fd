package registry

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	apperrors "github.com/penwyp/vendsync/internal/errors"
)

const cratesBaseURL = "https://crates.io"

// CratesClient queries the crates.io versions endpoint.
type CratesClient struct {
	client *resty.Client
	logger *zap.Logger
}

// NewCratesClient creates a client against crates.io. baseURL overrides the
// default for tests; empty means production.
func NewCratesClient(baseURL string, logger *zap.Logger) *CratesClient {
	if baseURL == "" {
		baseURL = cratesBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "vendsync")
	return &CratesClient{client: client, logger: logger}
}

// DownloadURL returns the archive endpoint for an exact crate version. The
// versions listing only carries download paths for the releases it returns,
// so re-installing a pinned version builds the path directly.
func (c *CratesClient) DownloadURL(crate, version string) string {
	return fmt.Sprintf("%s/api/v1/crates/%s/%s/download", c.client.BaseURL, crate, version)
}

type cratesVersionsResponse struct {
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
		DlPath string `json:"dl_path"`
	} `json:"versions"`
}

// LatestVersion returns the highest non-yanked semver release of a crate.
// crates.io guarantees semver version names, so ordering uses a semver
// comparison rather than the shape-based tag comparator.
func (c *CratesClient) LatestVersion(ctx context.Context, crate string) (Release, error) {
	var body cratesVersionsResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf("/api/v1/crates/%s/versions", crate))
	if err != nil {
		return Release{}, &apperrors.TransportError{Op: "crates.io versions " + crate, Err: err}
	}
	if resp.IsError() {
		return Release{}, &apperrors.TransportError{
			Op:  "crates.io versions " + crate,
			Err: fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	var (
		best     *semver.Version
		bestNum  string
		bestPath string
	)
	for _, v := range body.Versions {
		if v.Yanked {
			continue
		}
		parsed, err := semver.NewVersion(v.Num)
		if err != nil {
			c.logger.Debug("skipping unparseable crate version",
				zap.String("crate", crate), zap.String("version", v.Num))
			continue
		}
		if best == nil || parsed.GreaterThan(best) {
			best = parsed
			bestNum = v.Num
			bestPath = v.DlPath
		}
	}

	if best == nil {
		return Release{}, &apperrors.NoMatchingVersionError{Project: crate}
	}
	return Release{
		Version:      bestNum,
		DownloadURLs: []string{c.client.BaseURL + bestPath},
	}, nil
}
