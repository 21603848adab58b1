package verse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/MrSnakeDoc/askgrace/internal/domain"
	"github.com/MrSnakeDoc/askgrace/internal/utils"
)

// Translation is pinned: the lookup always asks for the King James text.
const Translation = "kjv"

const maxBody = 1 << 20

// Fetcher reads raw verse text from a bible-api.com compatible endpoint.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

type lookupResponse struct {
	Reference string `json:"reference"`
	Text      string `json:"text"`
}

// NewFetcher creates a fetcher for baseURL (ex: https://bible-api.com).
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// URL returns the lookup address for a canonical reference.
func (f *Fetcher) URL(ref string) string {
	return f.baseURL + "/" + url.PathEscape(ref) + "?translation=" + Translation
}

// Fetch returns the raw, uncleaned verse text for ref.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(ref), nil)
	if err != nil {
		return "", domain.WrapError(domain.ErrVerseFetchFailed, domain.MsgVerseLoadFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapError(domain.ErrVerseFetchFailed, domain.MsgVerseLoadFailed,
			fmt.Errorf("lookup %q: %w", ref, err))
	}
	defer utils.DrainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", domain.VerseFetchFailed(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", domain.WrapError(domain.ErrVerseFetchFailed, domain.MsgVerseLoadFailed, err)
	}

	var parsed lookupResponse
	if err := jsoniter.Unmarshal(body, &parsed); err != nil {
		return "", domain.WrapError(domain.ErrVerseFetchFailed, domain.MsgVerseLoadFailed,
			fmt.Errorf("decode lookup %q: %w", ref, err))
	}
	if parsed.Text == "" {
		return "", domain.NewError(domain.ErrVerseNotFound, domain.MsgVerseNotFound)
	}
	return parsed.Text, nil
}
