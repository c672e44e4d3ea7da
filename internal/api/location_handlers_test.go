package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocation(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	resp := ts.api.Post("/locations", map[string]any{
		"city":         "Berlin",
		"address":      "Hauptstrasse 1",
		"zip_code":     "10115",
		"country_code": "DE",
		"phone_number": "+49 30 123456",
	}, authHeader)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body LocationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotZero(t, body.ID)
	assert.Equal(t, "Berlin", body.City)
	// Phone numbers are normalized to digits.
	assert.Equal(t, "+4930123456", body.PhoneNumber)
}

func TestCreateLocation_AddressOnly(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	// Every field is optional free text; a location with only an address is
	// valid.
	resp := ts.api.Post("/locations", map[string]any{
		"address": "Hauptstrasse 1",
	}, authHeader)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body LocationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotZero(t, body.ID)
	assert.Empty(t, body.City)
	assert.Equal(t, "Hauptstrasse 1", body.Address)
}

func TestCreateLocation_OverlongCity(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	resp := ts.api.Post("/locations", map[string]any{
		"city": strings.Repeat("x", 101),
	}, authHeader)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "validation_error", body.ErrorType)
}

func TestGetLocation_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	resp := ts.api.Get("/locations/9999", authHeader)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	body := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "resource_not_found", body.ErrorType)
	assert.Equal(t, "RESOURCE_NOT_FOUND", body.ErrorCode)
}

func TestUpdateLocation_Partial(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	id := ts.createLocation(t, authHeader, "Berlin")

	resp := ts.api.Patch(fmt.Sprintf("/locations/%d", id), map[string]any{
		"city": "Potsdam",
	}, authHeader)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body LocationResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Potsdam", body.City)
}

func TestUpdateLocation_NoFields(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	id := ts.createLocation(t, authHeader, "Berlin")

	resp := ts.api.Put(fmt.Sprintf("/locations/%d", id), map[string]any{}, authHeader)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "invalid_operation", body.ErrorType)
}

func TestDeleteLocation_InUse(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	id := ts.createLocation(t, authHeader, "Berlin")
	ts.createFacility(t, authHeader, "Canteen North", id)

	resp := ts.api.Delete(fmt.Sprintf("/locations/%d", id), authHeader)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeError(t, resp.Body.Bytes())
	assert.Equal(t, "resource_in_use", body.ErrorType)
	assert.Equal(t, "RESOURCE_IN_USE", body.ErrorCode)
}

func TestDeleteLocation_Unused(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	id := ts.createLocation(t, authHeader, "Berlin")

	resp := ts.api.Delete(fmt.Sprintf("/locations/%d", id), authHeader)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get(fmt.Sprintf("/locations/%d", id), authHeader)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListLocations_Paginated(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	for _, city := range []string{"Berlin", "Hamburg", "Munich"} {
		ts.createLocation(t, authHeader, city)
	}

	resp := ts.api.Get("/locations?page=2&per_page=2", authHeader)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body listBody[LocationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Len(t, body.Items, 1)
	assert.Equal(t, 3, body.Pagination.TotalItems)
	assert.Equal(t, 2, body.Pagination.CurrentPage)
	assert.Equal(t, 2, body.Pagination.TotalPages)
}

func TestListLocations_InvalidPage(t *testing.T) {
	ts := setupTestServer(t)
	authHeader := ts.login(t)

	resp := ts.api.Get("/locations?page=0", authHeader)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/locations?per_page=101", authHeader)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
