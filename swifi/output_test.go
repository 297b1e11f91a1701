package swifi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONOutput(t *testing.T) {
	client := New()
	client.user = &User{IP: "1.2.3.4", Isp: "TestISP"}

	result := &Result{
		Server:   &Server{ID: 1001, Sponsor: "Sponsor A", Name: "Tokyo", Distance: 12.3},
		Download: &Measurement{Mbps: 42},
	}

	doc, err := client.JSON(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(doc, &decoded))

	assert.Contains(t, decoded, "timestamp")
	assert.Contains(t, decoded, "user_info")
	assert.Contains(t, decoded, "result")

	res := decoded["result"].(map[string]any)
	assert.Equal(t, 42.0, res["download"].(map[string]any)["mbps"])
	assert.NotContains(t, res, "upload", "unrequested direction is omitted")
}
