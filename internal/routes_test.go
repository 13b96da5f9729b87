package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsd/internal/controllers"
	"bsd/internal/structures"
	"bsd/internal/testutil"
)

func TestInitRoutes_RegistersAllEndpoints(t *testing.T) {
	ctrl := controllers.NewApiController(
		&testutil.MockLogger{},
		&testutil.MockStatsService{},
		testutil.NewMockCache(),
		&testutil.MockMetrics{},
	)

	router := InitRoutes(ctrl, &structures.Config{})
	routes := router.GetRoutes()
	require.Len(t, routes, 6)

	urls := make([]string, 0, len(routes))
	for _, route := range routes {
		urls = append(urls, route.Url)
	}
	assert.ElementsMatch(t, []string{"/event", "/live", "/history", "/window", "/analytics", "/identities"}, urls)
}
