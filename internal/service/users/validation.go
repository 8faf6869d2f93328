package users

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/users/models"
)

func validatePersonName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > domain.MaxNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxNameLength)
	}
	return nil
}

func validateFinalize(req *models.FinalizeProfileRequest) error {
	if err := validatePersonName("firstName", req.FirstName); err != nil {
		return err
	}
	return validatePersonName("lastName", req.LastName)
}

func validateUpdate(req *models.UpdateUserRequest) error {
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
		}
	}
	if req.Phone != nil && utf8.RuneCountInString(*req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must be at most %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}
	if req.FirstName != nil {
		if err := validatePersonName("firstName", *req.FirstName); err != nil {
			return err
		}
	}
	if req.LastName != nil {
		if err := validatePersonName("lastName", *req.LastName); err != nil {
			return err
		}
	}
	if req.Role != nil && !domain.Role(*req.Role).IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *req.Role)
	}
	return nil
}
