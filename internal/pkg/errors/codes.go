package errors

import "net/http"

var (
	ErrTaxonomyNotFound = New(
		"TAXONOMY_NOT_FOUND",
		"Taxonomy entry not found",
		http.StatusNotFound,
	)

	ErrTaxonomyInUse = New(
		"TAXONOMY_IN_USE",
		"Taxonomy entry is referenced by existing locations and cannot be rejected",
		http.StatusConflict,
	)

	ErrCorrectionNotFound = New(
		"CORRECTION_NOT_FOUND",
		"Correction rule not found",
		http.StatusNotFound,
	)

	ErrSelfCorrection = New(
		"SELF_CORRECTION",
		"Correct value must differ from incorrect value",
		http.StatusBadRequest,
	)

	ErrInvalidPartType = New(
		"INVALID_PART_TYPE",
		"Part type must be one of: country, city, neighborhood",
		http.StatusBadRequest,
	)

	ErrEmptyLevelChain = New(
		"EMPTY_LEVEL_CHAIN",
		"Country mapping requires a non-empty list of administrative levels",
		http.StatusBadRequest,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrInvalidCategory = New(
		"INVALID_CATEGORY",
		"Invalid location category",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrGeocodingFailed = New(
		"GEOCODING_FAILED",
		"Reverse geocoding provider request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
