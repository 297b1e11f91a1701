package swifi

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

const (
	serversURL            = "https://www.speedtest.net/speedtest-servers-static.php"
	serversAlternativeURL = "https://c.speedtest.net/speedtest-servers-static.php"
)

const (
	// listLimit is how many nearest servers the list view shows, and how
	// far an explicit server id is searched for.
	listLimit = 10
	// attemptLimit is how many nearest servers form the automatic
	// fallback chain.
	attemptLimit = 3

	maxSponsorLength = 20
	maxNameLength    = 20
)

// Server information. Immutable once returned by the catalog.
type Server struct {
	ID       uint32  `xml:"id,attr" json:"id"`
	Sponsor  string  `xml:"sponsor,attr" json:"sponsor"`
	Name     string  `xml:"name,attr" json:"name"`
	Country  string  `xml:"country,attr" json:"country"`
	URL      string  `xml:"url,attr" json:"url"`
	Host     string  `xml:"host,attr" json:"host"`
	Lat      string  `xml:"lat,attr" json:"-"`
	Lon      string  `xml:"lon,attr" json:"-"`
	Distance float64 `json:"distance"`
}

// serverList for decoding the directory payload.
type serverList struct {
	Servers []*Server `xml:"servers>server"`
}

// Servers is an ordered server sequence, nearest first.
type Servers []*Server

// ByDistance for sorting servers.
type ByDistance struct {
	Servers
}

// Len finds length of servers. For sorting servers.
func (servers Servers) Len() int {
	return len(servers)
}

// Swap swaps i-th and j-th. For sorting servers.
func (servers Servers) Swap(i, j int) {
	servers[i], servers[j] = servers[j], servers[i]
}

// Less compares the distance. For sorting servers.
func (b ByDistance) Less(i, j int) bool {
	return b.Servers[i].Distance < b.Servers[j].Distance
}

// FetchServers retrieves the known server set, computes the distance from the
// caller's detected location for each, sorts ascending by distance and
// returns the first limit entries.
func (c *Client) FetchServers(ctx context.Context, limit int) (Servers, error) {
	user, err := c.FetchUserInfo(ctx)
	if err != nil {
		return nil, err
	}

	list, err := c.fetchServerList(ctx)
	if err != nil {
		return nil, err
	}

	servers := dedupeByID(list.Servers)

	uLat, _ := strconv.ParseFloat(user.Lat, 64)
	uLon, _ := strconv.ParseFloat(user.Lon, 64)
	for _, server := range servers {
		sLat, _ := strconv.ParseFloat(server.Lat, 64)
		sLon, _ := strconv.ParseFloat(server.Lon, 64)
		server.Distance = distance(sLat, sLon, uLat, uLon)
	}

	sort.Sort(ByDistance{servers})

	if len(servers) > limit {
		servers = servers[:limit]
	}
	return servers, nil
}

func (c *Client) fetchServerList(ctx context.Context) (*serverList, error) {
	list, err := c.decodeServerList(ctx, serversURL)
	if err != nil || len(list.Servers) == 0 {
		// primary endpoint occasionally returns an empty document
		list, err = c.decodeServerList(ctx, serversAlternativeURL)
	}
	if err != nil {
		return nil, err
	}
	if len(list.Servers) == 0 {
		return nil, fmt.Errorf("%w: empty server directory", ErrCatalogUnavailable)
	}
	return list, nil
}

func (c *Client) decodeServerList(ctx context.Context, fetchURL string) (*serverList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	var list serverList
	if err := xml.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return &list, nil
}

func dedupeByID(servers []*Server) Servers {
	seen := make(map[uint32]bool, len(servers))
	out := make(Servers, 0, len(servers))
	for _, server := range servers {
		if seen[server.ID] {
			continue
		}
		seen[server.ID] = true
		out = append(out, server)
	}
	return out
}

func distance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	radius := 6378.137

	a1 := lat1 * math.Pi / 180.0
	b1 := lon1 * math.Pi / 180.0
	a2 := lat2 * math.Pi / 180.0
	b2 := lon2 * math.Pi / 180.0

	x := math.Sin(a1)*math.Sin(a2) + math.Cos(a1)*math.Cos(a2)*math.Cos(b2-b1)
	return radius * math.Acos(x)
}

// TopNearest returns the nearest servers for display purposes.
func (c *Client) TopNearest(ctx context.Context) (Servers, error) {
	return c.FetchServers(ctx, listLimit)
}

// SelectForTest resolves the candidate sequence for a test run. With no
// requested id the nearest servers form the fallback chain; with an explicit
// id only that server is returned, searched for among the nearest listLimit.
func (c *Client) SelectForTest(ctx context.Context, requestedID string) (Servers, error) {
	if requestedID == "" {
		return c.FetchServers(ctx, attemptLimit)
	}

	id, err := strconv.ParseUint(requestedID, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerID, requestedID)
	}

	servers, err := c.FetchServers(ctx, listLimit)
	if err != nil {
		return nil, err
	}

	matched := make(Servers, 0, 1)
	for _, server := range servers {
		if server.ID == uint32(id) {
			matched = append(matched, server)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrServerNotFound, id)
	}
	return matched, nil
}

// FormatTable renders the servers as a fixed-width table.
func (servers Servers) FormatTable() string {
	var b strings.Builder
	b.WriteString("Available Servers:\n")
	fmt.Fprintf(&b, "%-10s %-30s %-40s %-10s\n", "ID", "Sponsor", "Name", "Distance")
	b.WriteString(strings.Repeat("-", 100))
	b.WriteString("\n")

	for _, server := range servers {
		fmt.Fprintf(&b, "%-10d %-30s %-40s %-10.2f\n",
			server.ID,
			ellipsize(server.Sponsor, maxSponsorLength),
			ellipsize(server.Name, maxNameLength),
			server.Distance)
	}

	return b.String()
}

const ellipsis = "..."

// ellipsize truncates text to at most max characters, marking the cut with
// an ellipsis. The result is never longer than max and never shorter than
// the marker itself.
func ellipsize(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= len(ellipsis) {
		return ellipsis
	}
	return text[:max-len(ellipsis)] + ellipsis
}

// String representation of Server.
func (s *Server) String() string {
	return fmt.Sprintf("Server %d - %s (%s) - %.1f km",
		s.ID, ellipsize(s.Sponsor, maxSponsorLength), ellipsize(s.Name, maxNameLength), s.Distance)
}
