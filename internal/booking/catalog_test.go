package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ferry-backend/internal/domain"
	"ferry-backend/internal/domain/models"
)

func testRoute() models.RouteDefinition {
	return models.RouteDefinition{
		ID: "R1",
		Stops: []models.Stop{
			{ID: "a", Name: "Stop A", Seq: 0},
			{ID: "b", Name: "Stop B", Seq: 1},
			{ID: "c", Name: "Stop C", Seq: 2},
		},
	}
}

func testFares() []models.SegmentFare {
	return []models.SegmentFare{
		{Origin: 0, Destination: 1, Price: 100000},
		{Origin: 0, Destination: 2, Price: 150000},
		{Origin: 1, Destination: 2, Price: 120000},
	}
}

func TestNewSegmentCatalogRejectsShortRoute(t *testing.T) {
	route := models.RouteDefinition{ID: "R1", Stops: []models.Stop{{ID: "a", Seq: 0}}}
	_, err := NewSegmentCatalog(route, nil)
	assert.True(t, domain.IsConfiguration(err))
}

func TestNewSegmentCatalogRejectsMissingFare(t *testing.T) {
	fares := testFares()[:2] // pair [1,2) missing
	_, err := NewSegmentCatalog(testRoute(), fares)
	require.Error(t, err)
	assert.True(t, domain.IsConfiguration(err))
	assert.Contains(t, err.Error(), "missing fare")
}

func TestNewSegmentCatalogRejectsBadFarePairs(t *testing.T) {
	cases := [][]models.SegmentFare{
		append(testFares(), models.SegmentFare{Origin: 2, Destination: 1, Price: 1000}),
		append(testFares(), models.SegmentFare{Origin: 0, Destination: 5, Price: 1000}),
		append(testFares(), models.SegmentFare{Origin: 0, Destination: 1, Price: 90000}),
		{{Origin: 0, Destination: 1, Price: 0}, {Origin: 0, Destination: 2, Price: 1}, {Origin: 1, Destination: 2, Price: 1}},
	}
	for i, fares := range cases {
		_, err := NewSegmentCatalog(testRoute(), fares)
		assert.True(t, domain.IsConfiguration(err), "case %d", i)
	}
}

func TestNewSegmentCatalogRejectsGappySequence(t *testing.T) {
	route := testRoute()
	route.Stops[2].Seq = 5
	_, err := NewSegmentCatalog(route, testFares())
	assert.True(t, domain.IsConfiguration(err))
}

func TestListSegmentsOrderingAndAvailability(t *testing.T) {
	catalog, err := NewSegmentCatalog(testRoute(), testFares())
	require.NoError(t, err)

	ledger := NewSliceLedger(2, 10)
	require.NoError(t, ledger.Reserve(0, 2, 4))

	segments, err := catalog.ListSegments(ledger, 0)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, 0, segments[0].Origin)
	assert.Equal(t, 1, segments[0].Destination)
	assert.Equal(t, int64(100000), segments[0].Fare)
	assert.Equal(t, 6, segments[0].AvailableSeats)
	assert.Equal(t, "Stop A", segments[0].OriginStop.Name)

	assert.Equal(t, 0, segments[1].Origin)
	assert.Equal(t, 2, segments[1].Destination)
	assert.Equal(t, 6, segments[1].AvailableSeats)

	assert.Equal(t, 1, segments[2].Origin)
	assert.Equal(t, 2, segments[2].Destination)
	assert.Equal(t, 6, segments[2].AvailableSeats)
}

func TestListSegmentsMinSeatsFilter(t *testing.T) {
	catalog, err := NewSegmentCatalog(testRoute(), testFares())
	require.NoError(t, err)

	ledger := NewSliceLedger(2, 10)
	require.NoError(t, ledger.Reserve(1, 2, 8)) // leg 1 almost full

	segments, err := catalog.ListSegments(ledger, 5)
	require.NoError(t, err)
	require.Len(t, segments, 1, "only A->B still has 5 seats")
	assert.Equal(t, 0, segments[0].Origin)
	assert.Equal(t, 1, segments[0].Destination)
}

func TestCatalogSetUnknownRouteFares(t *testing.T) {
	_, err := NewCatalogSet(
		[]models.RouteDefinition{testRoute()},
		map[string][]models.SegmentFare{"R1": testFares(), "R9": testFares()},
	)
	assert.True(t, domain.IsConfiguration(err))
}

func TestCatalogSetForRoute(t *testing.T) {
	set, err := NewCatalogSet(
		[]models.RouteDefinition{testRoute()},
		map[string][]models.SegmentFare{"R1": testFares()},
	)
	require.NoError(t, err)

	_, err = set.ForRoute("R1")
	assert.NoError(t, err)

	_, err = set.ForRoute("R9")
	assert.True(t, domain.IsNotFound(err))
}
