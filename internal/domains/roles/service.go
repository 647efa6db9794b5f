package roles

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"kitabcloud-admin/internal/domains/crud"
	"kitabcloud-admin/internal/domains/entity"
	"kitabcloud-admin/internal/domains/registry"
	"kitabcloud-admin/internal/infrastructure/apiclient"
)

// Screen is everything the role/permission page renders.
type Screen struct {
	Roles       []Role
	Permissions []entity.Record
	Matrix      Matrix
}

type Service struct {
	api crud.Backend
}

func NewService(api crud.Backend) *Service {
	return &Service{api: api}
}

// Load fetches roles, permissions and the matrix concurrently. If any of
// the three fails the whole screen fails; there is no partial result.
func (s *Service) Load(ctx context.Context) (*Screen, error) {
	var (
		rolesRaw, permsRaw, matrixRaw json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.api.Do(gctx, http.MethodGet, registry.Roles, nil, &rolesRaw)
	})
	g.Go(func() error {
		return s.api.Do(gctx, http.MethodGet, registry.Permissions, nil, &permsRaw)
	})
	g.Go(func() error {
		return s.api.Do(gctx, http.MethodGet, registry.RolePermissions, nil, &matrixRaw)
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("roles screen fetch failed")
		return nil, err
	}

	roleRecords, err := crud.DecodeList(rolesRaw)
	if err != nil {
		return nil, fmt.Errorf("roles: %w", err)
	}
	perms, err := crud.DecodeList(permsRaw)
	if err != nil {
		return nil, fmt.Errorf("permissions: %w", err)
	}
	matrix, err := decodeMatrix(matrixRaw)
	if err != nil {
		return nil, fmt.Errorf("role permissions: %w", err)
	}

	screen := &Screen{Permissions: perms, Matrix: matrix}
	for _, rec := range roleRecords {
		screen.Roles = append(screen.Roles, roleFromRecord(rec))
	}
	return screen, nil
}

// Save posts the whole matrix verbatim.
func (s *Service) Save(ctx context.Context, m Matrix) error {
	if err := s.api.Do(ctx, http.MethodPost, registry.RolePermissions, apiclient.JSONBody(m), nil); err != nil {
		log.Error().Err(err).Msg("saving permissions failed")
		return err
	}
	log.Info().Int("roles", len(m)).Msg("permissions saved")
	return nil
}

// decodeMatrix accepts the matrix bare or under "data"; grant values may be
// booleans or 0/1.
func decodeMatrix(raw json.RawMessage) (Matrix, error) {
	if len(raw) == 0 {
		return Matrix{}, nil
	}

	var top map[string]any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", crud.ErrUnexpectedBody, err)
	}
	if inner, ok := top["data"].(map[string]any); ok {
		top = inner
	}

	m := Matrix{}
	for role, v := range top {
		perms, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for perm, granted := range perms {
			b, _ := entity.Truthy(granted)
			m.Set(role, perm, b)
		}
	}
	return m, nil
}
