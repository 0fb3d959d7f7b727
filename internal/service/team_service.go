package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/repository"
)

// TeamService coordina reglas de negocio para equipos.
type TeamService struct {
	logger *zap.Logger
	teams  repository.TeamRepository
}

func NewTeamService(logger *zap.Logger, teams repository.TeamRepository) *TeamService {
	return &TeamService{logger: logger, teams: teams}
}

func validateTeam(team domain.Team) error {
	if err := validateName("name", team.Name); err != nil {
		return err
	}
	if err := validateName("sport", team.Sport); err != nil {
		return err
	}
	return validateCountry(team.CountryOfOrigin)
}

func (s *TeamService) Create(ctx context.Context, team domain.Team) (domain.Team, error) {
	if err := validateTeam(team); err != nil {
		return domain.Team{}, err
	}
	created, err := s.teams.Create(ctx, team)
	if err != nil {
		s.logger.Error("insert team failed", zap.String("name", team.Name), zap.Error(err))
		return domain.Team{}, err
	}
	return created, nil
}

func (s *TeamService) Get(ctx context.Context, name string) (domain.Team, error) {
	if err := validateName("name", name); err != nil {
		return domain.Team{}, err
	}
	team, err := s.teams.GetByName(ctx, name)
	if err != nil {
		return domain.Team{}, notFound(err, "team %q", name)
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]domain.Team, error) {
	return s.teams.List(ctx)
}

// Update reemplaza el equipo llamado originalName.
func (s *TeamService) Update(ctx context.Context, originalName string, team domain.Team) (domain.Team, error) {
	if err := validateName("original name", originalName); err != nil {
		return domain.Team{}, err
	}
	if err := validateTeam(team); err != nil {
		return domain.Team{}, err
	}
	if err := s.teams.Replace(ctx, originalName, team); err != nil {
		return domain.Team{}, notFound(err, "team %q", originalName)
	}
	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, name string) error {
	if err := validateName("name", name); err != nil {
		return err
	}
	return notFound(s.teams.Delete(ctx, name), "team %q", name)
}

// notFound traduce repository.ErrNotFound al error de servicio y deja pasar
// el resto sin cambios.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
