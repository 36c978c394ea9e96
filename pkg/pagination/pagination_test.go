package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 20, Offset: 0}},
		{"explicit", "page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"zero page falls back", "page=0&limit=10", Params{Page: 1, Limit: 10, Offset: 0}},
		{"negative limit falls back", "page=2&limit=-5", Params{Page: 2, Limit: 20, Offset: 20}},
		{"limit capped", "limit=500", Params{Page: 1, Limit: 100, Offset: 0}},
		{"garbage falls back", "page=abc&limit=xyz", Params{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paramsFor(tc.query))
		})
	}
}
