package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// DefaultOverpassEndpoint is the public Overpass interpreter.
const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassClient posts Overpass QL queries.
type OverpassClient struct {
	endpoint string
	client   *http.Client
}

// NewOverpassClient creates a client for endpoint. A nil client gets
// DefaultTimeout.
func NewOverpassClient(endpoint string, client *http.Client) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	return &OverpassClient{endpoint: endpoint, client: defaultClient(client)}
}

// Query sends query as a form-encoded "data" field and returns the raw
// response body.
func (c *OverpassClient) Query(ctx context.Context, query string) ([]byte, error) {
	body := "data=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ensureContext(ctx), http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(c.client, req)
}

// HighwayQuery returns a JSON query for ways carrying the filter key inside
// b, plus their nodes. Overpass boxes are (south,west,north,east).
func HighwayQuery(b orb.Bound, filter string) string {
	if filter == "" {
		filter = "highway"
	}
	box := strings.Join([]string{
		coord(b.Min.Lat()), coord(b.Min.Lon()), coord(b.Max.Lat()), coord(b.Max.Lon()),
	}, ",")
	return fmt.Sprintf(`[out:json];
(
  way[%q](%s);
  node(w);
);
out body;
>;
out skel qt;
`, filter, box)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
