package registry

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"

	apperrors "github.com/penwyp/vendsync/internal/errors"
)

// GitHubClient queries the GitHub latest-release endpoint.
type GitHubClient struct {
	client *github.Client
}

// NewGitHubClient creates a GitHub client. An empty token means anonymous
// access, which is enough for public release lookups at low volume.
func NewGitHubClient(token string) *GitHubClient {
	if token == "" {
		return &GitHubClient{client: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: strings.TrimSpace(token)})
	tc := oauth2.NewClient(context.Background(), ts)
	return &GitHubClient{client: github.NewClient(tc)}
}

// SetBaseURL points the client at a test server.
func (c *GitHubClient) SetBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	c.client.BaseURL = parsed
	return nil
}

// LatestRelease returns the latest published release of owner/repo: the tag
// name as the version, and every asset URL plus the source tarball/zipball
// as download candidates.
func (c *GitHubClient) LatestRelease(ctx context.Context, owner, repo string) (Release, error) {
	rel, _, err := c.client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return Release{}, &apperrors.TransportError{Op: "github latest release " + owner + "/" + repo, Err: err}
	}

	var urls []string
	for _, asset := range rel.Assets {
		if u := asset.GetBrowserDownloadURL(); u != "" {
			urls = append(urls, u)
		}
	}
	if u := rel.GetTarballURL(); u != "" {
		urls = append(urls, u)
	}
	if u := rel.GetZipballURL(); u != "" {
		urls = append(urls, u)
	}

	return Release{Version: rel.GetTagName(), DownloadURLs: urls}, nil
}
