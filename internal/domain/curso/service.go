package curso

import (
	"context"
	"fmt"

	"github.com/clinica/historias/internal/domain/errs"
)

const notFoundMsg = "Curso no encontrado"

// Service composes validation and row storage for cursos.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Curso, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Curso, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errs.NotFound(notFoundMsg)
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, input map[string]interface{}) (*Curso, error) {
	c, err := Validate(input)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, input map[string]interface{}) (*Curso, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errs.NotFound(notFoundMsg)
	}

	c, err := Validate(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Row vanished between the existence check and the write.
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
		return fmt.Errorf("no se pudo eliminar el curso %d", id)
	}
	return nil
}
