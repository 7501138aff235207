package master

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/timeclock-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-go/internal/domain/directory"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
)

type MasterService interface {
	// Department operations
	ListDepartments(ctx context.Context) (directory.ListResponse, error)
	AddDepartment(ctx context.Context, req directory.NameRequest) (directory.AddResponse, error)
	RemoveDepartment(ctx context.Context, name string) error

	// Position operations
	ListPositions(ctx context.Context) (directory.ListResponse, error)
	AddPosition(ctx context.Context, req directory.NameRequest) (directory.AddResponse, error)
	RemovePosition(ctx context.Context, name string) error
}

// ListStore is the part of the session and directory store that owns the
// department and position lists.
type ListStore interface {
	Departments() []string
	AddDepartment(ctx context.Context, name string) (bool, error)
	RemoveDepartment(ctx context.Context, name string) error
	Positions() []string
	AddPosition(ctx context.Context, name string) (bool, error)
	RemovePosition(ctx context.Context, name string) error
}

type masterServiceImpl struct {
	store ListStore
}

func NewMasterService(store ListStore) MasterService {
	return &masterServiceImpl{store: store}
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) (directory.ListResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return directory.ListResponse{}, err
	}
	return directory.ListResponse{Items: s.store.Departments()}, nil
}

func (s *masterServiceImpl) AddDepartment(ctx context.Context, req directory.NameRequest) (directory.AddResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return directory.AddResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return directory.AddResponse{}, err
	}

	added, err := s.store.AddDepartment(ctx, req.Name)
	if err != nil {
		return directory.AddResponse{}, err
	}
	return directory.AddResponse{
		Name:  strings.TrimSpace(req.Name),
		Added: added,
		Items: s.store.Departments(),
	}, nil
}

func (s *masterServiceImpl) RemoveDepartment(ctx context.Context, name string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.store.RemoveDepartment(ctx, name)
}

func (s *masterServiceImpl) ListPositions(ctx context.Context) (directory.ListResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return directory.ListResponse{}, err
	}
	return directory.ListResponse{Items: s.store.Positions()}, nil
}

func (s *masterServiceImpl) AddPosition(ctx context.Context, req directory.NameRequest) (directory.AddResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return directory.AddResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return directory.AddResponse{}, err
	}

	added, err := s.store.AddPosition(ctx, req.Name)
	if err != nil {
		return directory.AddResponse{}, err
	}
	return directory.AddResponse{
		Name:  strings.TrimSpace(req.Name),
		Added: added,
		Items: s.store.Positions(),
	}, nil
}

func (s *masterServiceImpl) RemovePosition(ctx context.Context, name string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.store.RemovePosition(ctx, name)
}

func requireAdmin(ctx context.Context) error {
	session, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return err
	}
	if !session.IsAdmin {
		return auth.ErrAdminRequired
	}
	return nil
}
