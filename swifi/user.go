package swifi

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
)

const configURL = "https://www.speedtest.net/speedtest-config.php"

// User represents information determined about the caller by speedtest.net.
type User struct {
	IP  string `xml:"ip,attr" json:"ip"`
	Lat string `xml:"lat,attr" json:"lat"`
	Lon string `xml:"lon,attr" json:"lon"`
	Isp string `xml:"isp,attr" json:"isp"`
}

// users for decoding the configuration payload.
type users struct {
	Users []User `xml:"client"`
}

// FetchUserInfo returns information about the caller determined by
// speedtest.net, observing the given context. The result is cached on the
// client; the configuration endpoint is hit at most once per client.
func (c *Client) FetchUserInfo(ctx context.Context) (*User, error) {
	if c.user != nil {
		return c.user, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, configURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	var u users
	if err := xml.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if len(u.Users) == 0 {
		return nil, fmt.Errorf("%w: empty configuration payload", ErrCatalogUnavailable)
	}

	c.user = &u.Users[0]
	return c.user, nil
}

// String representation of User.
func (u *User) String() string {
	return fmt.Sprintf("%s (%s) [%s, %s]", u.IP, u.Isp, u.Lat, u.Lon)
}
