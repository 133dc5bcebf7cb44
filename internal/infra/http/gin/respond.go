package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayseek/internal/app/dto"
	propertyapp "stayseek/internal/app/handlers/properties"
	"stayseek/internal/domain/property"
	"stayseek/internal/domain/shared/daterange"
)

// respondPropertyError maps application errors onto HTTP statuses. Input
// problems are 400, missing aggregates 404, identity problems 401/403;
// anything unmapped is logged and hidden behind a generic 500.
func respondPropertyError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, property.ErrNotFound),
		errors.Is(err, property.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, propertyapp.ErrTenantMissing):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
	case errors.Is(err, propertyapp.ErrNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", "error", err, "path", c.FullPath())
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		propertyapp.ErrCityRequired,
		propertyapp.ErrGuestsInvalid,
		propertyapp.ErrPageInvalid,
		propertyapp.ErrPropertyIDInvalid,
		propertyapp.ErrMonthInvalid,
		propertyapp.ErrYearInvalid,
		propertyapp.ErrBlockRange,
		propertyapp.ErrRateRange,
		propertyapp.ErrRatePrice,
		propertyapp.ErrPicturePath,
		propertyapp.ErrRoomRequired,
		daterange.ErrInvalidRange,
		daterange.ErrCheckInPast,
		dto.ErrPageOutOfRange,
		property.ErrNameRequired,
		property.ErrTenantRequired,
		property.ErrBadCategoryRef,
		property.ErrBadCityRef,
		property.ErrRoomNameRequired,
		property.ErrRoomPrice,
		property.ErrRoomGuests,
		property.ErrRoomQuantity,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
