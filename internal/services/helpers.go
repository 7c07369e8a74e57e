package services

import (
	"propertydeals_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// wrapRepoError maps a repository error to the API error taxonomy.
func wrapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.InternalError(err)
}
