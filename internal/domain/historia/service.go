package historia

import (
	"context"
	"fmt"

	"github.com/clinica/historias/internal/domain/errs"
)

const notFoundMsg = "Historia clínica no encontrada"

// Service composes validation and row storage for historias clínicas.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Historia, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Historia, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errs.NotFound(notFoundMsg)
	}
	return h, nil
}

func (s *Service) GetByCedula(ctx context.Context, cedula string) ([]*Historia, error) {
	return s.repo.FindByCedula(ctx, cedula)
}

// Create validates and normalizes the input before any store access.
func (s *Service) Create(ctx context.Context, input map[string]interface{}) (*Historia, error) {
	h, err := Validate(input)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, h)
}

// Update replaces every writable field at once. The row must exist before
// validation runs; a concurrent delete between the existence check and
// the write surfaces as the same not-found result.
func (s *Service) Update(ctx context.Context, id int64, input map[string]interface{}) (*Historia, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound(notFoundMsg)
	}

	h, err := Validate(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, h)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errs.NotFound(notFoundMsg)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errs.NotFound(notFoundMsg)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("no se pudo eliminar la historia clínica %d", id)
	}
	return nil
}
