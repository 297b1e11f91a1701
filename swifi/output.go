package swifi

import (
	"encoding/json"
	"fmt"
	"time"
)

type resultOutput struct {
	Timestamp outputTime `json:"timestamp"`
	UserInfo  *User      `json:"user_info,omitempty"`
	Result    *Result    `json:"result"`
}

type outputTime time.Time

func (t outputTime) MarshalJSON() ([]byte, error) {
	stamp := fmt.Sprintf("\"%s\"", time.Time(t).Format("2006-01-02 15:04:05.000"))
	return []byte(stamp), nil
}

// JSON renders a test result as a timestamped JSON document, including the
// caller information when it has been fetched.
func (c *Client) JSON(result *Result) ([]byte, error) {
	return json.Marshal(
		resultOutput{
			Timestamp: outputTime(time.Now()),
			UserInfo:  c.user,
			Result:    result,
		},
	)
}
