package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/catalog/models"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > domain.MaxServiceDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxServiceDescriptionLength)
	}
	return nil
}

func validateDuration(durationMin int) error {
	if durationMin < domain.MinServiceDurationMin || durationMin > domain.MaxServiceDurationMin {
		return fmt.Errorf("%w: durationMin must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMin, domain.MaxServiceDurationMin)
	}
	return nil
}

func validatePrice(priceCents int) error {
	if priceCents < 0 {
		return fmt.Errorf("%w: priceCents must be >= 0", ErrInvalidInput)
	}
	return nil
}

func validateCreate(req *models.CreateServiceRequest) error {
	if err := validateName(req.Name); err != nil {
		return err
	}
	if err := validateDescription(req.Description); err != nil {
		return err
	}
	if err := validateDuration(req.DurationMin); err != nil {
		return err
	}
	return validatePrice(req.PriceCents)
}

func validateUpdate(req *models.UpdateServiceRequest) error {
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if err := validateDescription(req.Description); err != nil {
		return err
	}
	if req.DurationMin != nil {
		if err := validateDuration(*req.DurationMin); err != nil {
			return err
		}
	}
	if req.PriceCents != nil {
		return validatePrice(*req.PriceCents)
	}
	return nil
}

// toFilter применяет значения по умолчанию: skip=0, take=20, createdAt desc
func toFilter(req *models.ListServicesRequest) (domain.ServiceFilter, error) {
	filter := domain.ServiceFilter{
		Skip:     0,
		Take:     domain.DefaultTake,
		OrderBy:  domain.ServiceOrderByCreatedAt,
		OrderDir: domain.SortDesc,
	}

	if req.Search != nil && strings.TrimSpace(*req.Search) != "" {
		search := strings.TrimSpace(*req.Search)
		filter.Search = &search
	}
	if req.Skip != nil {
		if *req.Skip < 0 {
			return filter, fmt.Errorf("%w: skip must be >= 0", ErrInvalidInput)
		}
		filter.Skip = *req.Skip
	}
	if req.Take != nil {
		if *req.Take <= 0 {
			return filter, fmt.Errorf("%w: take must be positive", ErrInvalidInput)
		}
		filter.Take = min(*req.Take, domain.MaxTake)
	}
	if req.OrderBy != nil {
		field := domain.ServiceOrderField(*req.OrderBy)
		if !field.IsValid() {
			return filter, fmt.Errorf("%w: unsupported orderBy %q", ErrInvalidInput, *req.OrderBy)
		}
		filter.OrderBy = field
	}
	if req.OrderDir != nil {
		dir := domain.SortDirection(*req.OrderDir)
		if !dir.IsValid() {
			return filter, fmt.Errorf("%w: orderDir must be asc or desc", ErrInvalidInput)
		}
		filter.OrderDir = dir
	}

	return filter, nil
}
