package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dshills/teletextmap/internal/session"
)

// TileConfig configures a static-tile client.
type TileConfig struct {
	// Endpoint is the styles API root, e.g. https://api.mapbox.com/styles/v1.
	Endpoint string
	// Style is the "owner/style" path segment.
	Style string
	// Size is the square tile edge in pixels.
	Size int
	// Token is the access token appended as access_token.
	Token string
}

// TileClient downloads static map images.
type TileClient struct {
	cfg    TileConfig
	client *http.Client
}

// NewTileClient creates a tile client. A nil client gets DefaultTimeout.
func NewTileClient(cfg TileConfig, client *http.Client) *TileClient {
	return &TileClient{cfg: cfg, client: defaultClient(client)}
}

// URL builds the static image URL for p:
//
//	{endpoint}/{style}/static/{lng},{lat},{zoom}/{size}x{size}?access_token={token}
func (c *TileClient) URL(p session.Position) string {
	q := url.Values{}
	q.Set("access_token", c.cfg.Token)
	return fmt.Sprintf("%s/%s/static/%s,%s,%d/%dx%d?%s",
		c.cfg.Endpoint, c.cfg.Style,
		strconv.FormatFloat(p.Lng, 'f', -1, 64), strconv.FormatFloat(p.Lat, 'f', -1, 64), p.Zoom,
		c.cfg.Size, c.cfg.Size, q.Encode())
}

// Fetch downloads the encoded tile image for p.
func (c *TileClient) Fetch(ctx context.Context, p session.Position) ([]byte, error) {
	if c.cfg.Token == "" {
		return nil, ErrNoToken
	}
	req, err := http.NewRequestWithContext(ensureContext(ctx), http.MethodGet, c.URL(p), nil)
	if err != nil {
		return nil, fmt.Errorf("building tile request: %w", err)
	}
	return do(c.client, req)
}
