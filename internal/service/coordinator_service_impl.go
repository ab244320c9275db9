package service

import (
	"context"
	"fmt"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/repository"
)

type coordinatorService struct {
	coordinators repository.CoordinatorRepo
}

// NewCoordinatorService exposes the studio's coordinator directory.
func NewCoordinatorService(coordinators repository.CoordinatorRepo) CoordinatorService {
	return &coordinatorService{coordinators: coordinators}
}

func (s *coordinatorService) Directory(ctx context.Context, role domain.CoordinatorRole) ([]*domain.Coordinator, error) {
	if !domain.ValidCoordinatorRoles[string(role)] {
		return nil, fmt.Errorf("%w: coordinator role %q is not accepted", ErrValidation, role)
	}
	return s.coordinators.ListByRole(ctx, role)
}
