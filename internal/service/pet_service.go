package service

import (
	"context"

	"go.uber.org/zap"

	"pettag/internal/config"
	"pettag/internal/domain"
	"pettag/internal/port"
)

// UpdatePetInput is the DTO for updating a pet. Nil fields are left untouched.
type UpdatePetInput struct {
	Name          *string         `json:"name"`
	Username      *string         `json:"username"`
	Type          *domain.PetType `json:"type"`
	Breed         *string         `json:"breed"`
	Age           *string         `json:"age"`
	Color         *string         `json:"color"`
	Description   *string         `json:"description"`
	PhotoURL      *string         `json:"photo_url"`
	ShowPhone     *bool           `json:"show_phone"`
	ShowWhatsApp  *bool           `json:"show_whatsapp"`
	ShowInstagram *bool           `json:"show_instagram"`
	ShowAddress   *bool           `json:"show_address"`
	IsActive      *bool           `json:"is_active"`
	IsLost        *bool           `json:"is_lost"`
}

// PetService defines the pet management contract.
type PetService interface {
	ListWithOwners(ctx context.Context, limit, offset int) ([]domain.PetWithOwner, error)
	Get(ctx context.Context, petID int64) (*domain.PetWithOwner, error)
	Update(ctx context.Context, petID int64, input UpdatePetInput) (*domain.PetWithOwner, error)
}

type petService struct {
	pets   port.PetRepository
	limits config.AdminConfig
	log    *zap.Logger
}

// NewPetService creates a new PetService implementation.
func NewPetService(pets port.PetRepository, limits config.AdminConfig, log *zap.Logger) PetService {
	return &petService{pets: pets, limits: limits, log: log}
}

func (s *petService) ListWithOwners(ctx context.Context, limit, offset int) ([]domain.PetWithOwner, error) {
	opts, err := pageOptions(s.limits, limit, offset)
	if err != nil {
		return nil, err
	}
	pets, err := s.pets.List(ctx, port.PetFilter{IsActive: ptr(true)}, opts)
	if err != nil {
		logFailure(s.log, "petService.ListWithOwners", 0, err)
		return nil, err
	}
	return pets, nil
}

func (s *petService) Get(ctx context.Context, petID int64) (*domain.PetWithOwner, error) {
	if err := validateID("pet_id", petID); err != nil {
		return nil, err
	}
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		logFailure(s.log, "petService.Get", petID, err)
		return nil, err
	}
	return pet, nil
}

func (s *petService) Update(ctx context.Context, petID int64, input UpdatePetInput) (*domain.PetWithOwner, error) {
	if err := validateID("pet_id", petID); err != nil {
		return nil, err
	}
	if err := validateRequired("name", input.Name); err != nil {
		return nil, err
	}
	if err := validateRequired("username", input.Username); err != nil {
		return nil, err
	}
	if input.Type != nil && !domain.ValidPetTypes[*input.Type] {
		return nil, domain.NewValidation("type", "is not a known pet type")
	}

	patch := domain.PetPatch{
		Name:          input.Name,
		Username:      input.Username,
		Type:          input.Type,
		Breed:         input.Breed,
		Age:           input.Age,
		Color:         input.Color,
		Description:   input.Description,
		PhotoURL:      input.PhotoURL,
		ShowPhone:     input.ShowPhone,
		ShowWhatsApp:  input.ShowWhatsApp,
		ShowInstagram: input.ShowInstagram,
		ShowAddress:   input.ShowAddress,
		IsActive:      input.IsActive,
		IsLost:        input.IsLost,
	}
	if patch.IsEmpty() {
		return nil, domain.NewValidation("input", "has no fields to update")
	}

	pet, err := s.pets.Update(ctx, petID, patch)
	if err != nil {
		logFailure(s.log, "petService.Update", petID, err)
		return nil, err
	}
	return pet, nil
}
