package store

import (
	"testing"

	"github.com/MKhiriev/go-tours/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONColumn_Value(t *testing.T) {
	images := []string{"a.jpg", "b.jpg"}

	v, err := asJSON(&images).Value()
	require.NoError(t, err)
	assert.Equal(t, `["a.jpg","b.jpg"]`, v)
}

func TestJSONColumn_Scan(t *testing.T) {
	var point models.GeoPoint

	require.NoError(t, asJSON(&point).Scan([]byte(`{"type":"Point","coordinates":[1.5,2.5]}`)))
	assert.Equal(t, 1.5, point.Lng())
	assert.Equal(t, 2.5, point.Lat())

	require.NoError(t, asJSON(&point).Scan(nil))
	assert.Equal(t, models.GeoPoint{}, point)

	assert.Error(t, asJSON(&point).Scan(42))
	assert.Error(t, asJSON(&point).Scan(`{"type":`))
}

func TestRefsColumn_StoresIDsOnly(t *testing.T) {
	guides := []models.Ref[models.UserSummary]{
		models.NewRef[models.UserSummary]("id-1"),
		models.NewRef[models.UserSummary]("id-2"),
	}
	guides[0].Populate(models.UserSummary{ID: "id-1", Name: "Lourdes"})

	v, err := asRefs(&guides).Value()
	require.NoError(t, err)
	assert.Equal(t, `["id-1","id-2"]`, v)

	var scanned []models.Ref[models.UserSummary]
	require.NoError(t, asRefs(&scanned).Scan(`["id-3"]`))
	require.Len(t, scanned, 1)
	assert.Equal(t, "id-3", scanned[0].ID)
}

func TestNonNil(t *testing.T) {
	var images []string

	v, err := asJSON(nonNil(&images)).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
