// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"net/url"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTourID = "0190b7a0-0000-7000-8000-00000000000a"

func newTestTourRepo(t *testing.T) (*tourRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewTourRepository(db, logger.Nop()).(*tourRepository), mock
}

func tourRow() []driver.Value {
	return []driver.Value{
		testTourID,
		"The Forest Hiker",
		"the-forest-hiker",
		int64(5),
		int64(25),
		"easy",
		4.7,
		int64(37),
		397.0,
		0.0,
		"Breathtaking hike through the Canadian Banff National Park",
		"",
		"tour-1-cover.jpg",
		[]byte(`["tour-1-1.jpg","tour-1-2.jpg"]`),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		[]byte(`["2026-04-25T09:00:00Z","2026-07-20T09:00:00Z"]`),
		false,
		[]byte(`{"type":"Point","coordinates":[-115.570154,51.178456],"address":"224 Banff Ave, Banff, AB, Canada"}`),
		[]byte(`[{"type":"Point","coordinates":[-116.214531,51.417611],"description":"Banff National Park","day":1}]`),
		[]byte(`["0190b7a0-0000-7000-8000-000000000001"]`),
	}
}

func tourRows() *sqlmock.Rows {
	return sqlmock.NewRows(TourSchema.Columns()).AddRow(tourRow()...)
}

func TestTourFindByID_DecodesJSONColumns(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("SELECT .+ FROM tours WHERE id = \\$1 AND secret_tour = \\$2 LIMIT 1").
		WithArgs(testTourID, false).
		WillReturnRows(tourRows())

	tour, err := repo.FindByID(context.Background(), testTourID)
	require.NoError(t, err)

	assert.Equal(t, models.DifficultyEasy, tour.Difficulty)
	assert.Equal(t, []string{"tour-1-1.jpg", "tour-1-2.jpg"}, tour.Images)
	require.Len(t, tour.StartDates, 2)
	assert.Equal(t, time.April, tour.StartDates[0].Month())
	assert.InDelta(t, 51.178456, tour.StartLocation.Lat(), 1e-9)
	require.Len(t, tour.Locations, 1)
	assert.Equal(t, 1, tour.Locations[0].Day)
	require.Len(t, tour.Guides, 1)
	assert.Equal(t, "0190b7a0-0000-7000-8000-000000000001", tour.Guides[0].ID)
	assert.Nil(t, tour.Guides[0].Doc)
}

func TestTourCreate_AssignsIDAndStoresEmptyArrays(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("INSERT INTO tours .+ RETURNING id, name, slug").
		WillReturnRows(tourRows())

	tour := models.NewTour()
	tour.Name = "The Forest Hiker"

	_, err := repo.Create(context.Background(), tour)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTourList_AppliesScopeAndFeatures(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	values, err := url.ParseQuery("price[gte]=500&difficulty=easy&sort=-price,ratingsAverage&fields=name,price&page=2&limit=5")
	require.NoError(t, err)
	f, err := query.Parse(values, TourSchema.Whitelist()...)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name, price FROM tours WHERE secret_tour = \\$1 AND difficulty = \\$2 AND price >= \\$3 ORDER BY price DESC, ratings_average ASC, id ASC LIMIT 5 OFFSET 5").
		WithArgs(false, "easy", 500.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price"}).
			AddRow(testTourID, "The Forest Hiker", 397.0))

	tours, err := repo.List(context.Background(), f, nil)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "The Forest Hiker", tours[0].Name)
	assert.Empty(t, tours[0].Summary)
}

func TestTourList_UnknownField(t *testing.T) {
	repo, _ := newTestTourRepo(t)

	f, err := query.Parse(url.Values{"password": {"x"}})
	require.NoError(t, err)

	_, err = repo.List(context.Background(), f, nil)
	assert.ErrorIs(t, err, query.ErrUnknownField)
}

func TestTourList_PageOverflowIsEmpty(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	f, err := query.Parse(url.Values{"page": {"99"}})
	require.NoError(t, err)

	mock.ExpectQuery("FROM tours").
		WillReturnRows(sqlmock.NewRows(TourSchema.Columns()))

	tours, err := repo.List(context.Background(), f, nil)
	require.NoError(t, err)
	assert.NotNil(t, tours)
	assert.Empty(t, tours)
}

func TestTourFindBySlug(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("FROM tours WHERE slug = \\$1 AND secret_tour = \\$2").
		WithArgs("the-forest-hiker", false).
		WillReturnRows(tourRows())

	tour, err := repo.FindBySlug(context.Background(), "the-forest-hiker")
	require.NoError(t, err)
	assert.Equal(t, testTourID, tour.ID)
}

func TestTourFindByIDs(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("FROM tours WHERE id IN \\(\\$1\\) AND secret_tour = \\$2").
		WithArgs(testTourID, false).
		WillReturnRows(tourRows())

	tours, err := repo.FindByIDs(context.Background(), []string{testTourID})
	require.NoError(t, err)
	assert.Len(t, tours, 1)
}

func TestTourStartLocations(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("SELECT id, name, start_location FROM tours WHERE secret_tour = \\$1 ORDER BY name ASC").
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_location"}).
			AddRow(testTourID, "The Forest Hiker", []byte(`{"type":"Point","coordinates":[-115.57,51.17]}`)))

	tours, err := repo.StartLocations(context.Background())
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.InDelta(t, -115.57, tours[0].StartLocation.Lng(), 1e-9)
}

func TestTourStats(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	mock.ExpectQuery("SELECT UPPER\\(difficulty\\)").
		WithArgs(4.5).
		WillReturnRows(sqlmock.NewRows([]string{"difficulty", "num_tours", "num_ratings", "avg_rating", "avg_price", "min_price", "max_price"}).
			AddRow("EASY", int64(4), int64(159), 4.67, 1272.0, 397.0, 1997.0))

	stats, err := repo.Stats(context.Background(), 4.5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, models.TourStats{
		Difficulty: "EASY", NumTours: 4, NumRatings: 159,
		AvgRating: 4.67, AvgPrice: 1272, MinPrice: 397, MaxPrice: 1997,
	}, stats[0])
}

func TestTourMonthlyPlan(t *testing.T) {
	repo, mock := newTestTourRepo(t)

	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("jsonb_array_elements_text").
		WithArgs(from, from.AddDate(1, 0, 0)).
		WillReturnRows(sqlmock.NewRows([]string{"month", "num_tour_starts", "tours"}).
			AddRow(int64(7), int64(3), []byte(`["The Forest Hiker","The Sea Explorer","The Sports Lover"]`)))

	plan, err := repo.MonthlyPlan(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Equal(t, 7, plan[0].Month)
	assert.Equal(t, 3, plan[0].NumTourStarts)
	assert.Len(t, plan[0].Tours, 3)
}
