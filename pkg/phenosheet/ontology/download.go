package ontology

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	hpoRepo          = "obophenotype/human-phenotype-ontology"
	latestReleaseURL = "https://api.github.com/repos/" + hpoRepo + "/releases/latest"
	releaseAssetURL  = "https://github.com/" + hpoRepo + "/releases/download/%s/hp.json"
)

// Downloader fetches HPO release snapshots. The zero value is not usable;
// construct with NewDownloader.
type Downloader struct {
	client *http.Client
	// latestURL and assetURL are overridable for tests.
	latestURL string
	assetURL  string
}

// NewDownloader returns a Downloader with a sane request timeout.
func NewDownloader() *Downloader {
	return &Downloader{
		client:    &http.Client{Timeout: 60 * time.Second},
		latestURL: latestReleaseURL,
		assetURL:  releaseAssetURL,
	}
}

// ResolveTag returns the release tag to download: the pinned version
// (v-prefixed if needed) or the latest release tag from the GitHub API.
func (d *Downloader) ResolveTag(ctx context.Context, version string) (string, error) {
	if version != "" {
		if !strings.HasPrefix(version, "v") {
			version = "v" + version
		}
		return version, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.latestURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("querying latest HPO release: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("querying latest HPO release: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decoding release metadata: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("release metadata has no tag name")
	}
	return release.TagName, nil
}

// Download fetches the hp.json asset of the given release tag into dir and
// returns the written file path.
func (d *Downloader) Download(ctx context.Context, tag, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	url := fmt.Sprintf(d.assetURL, tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading HPO release %s: %w", tag, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("downloading HPO release %s: unexpected status %s", tag, resp.Status)
	}

	out := filepath.Join(dir, "hp.json")
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(out)
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}
