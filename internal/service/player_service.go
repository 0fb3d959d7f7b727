package service

import (
	"context"

	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/repository"
)

// PlayerService coordina reglas de negocio para jugadores.
type PlayerService struct {
	logger  *zap.Logger
	players repository.PlayerRepository
}

func NewPlayerService(logger *zap.Logger, players repository.PlayerRepository) *PlayerService {
	return &PlayerService{logger: logger, players: players}
}

func validatePlayer(player domain.Player) error {
	if err := validateName("name", player.Name); err != nil {
		return err
	}
	if err := validateName("team", player.Team); err != nil {
		return err
	}
	if err := validateStat("age", player.Age); err != nil {
		return err
	}
	return validateStat("points", player.Points)
}

func (s *PlayerService) Create(ctx context.Context, player domain.Player) (domain.Player, error) {
	if err := validatePlayer(player); err != nil {
		return domain.Player{}, err
	}
	created, err := s.players.Create(ctx, player)
	if err != nil {
		s.logger.Error("insert player failed", zap.String("name", player.Name), zap.Error(err))
		return domain.Player{}, err
	}
	return created, nil
}

func (s *PlayerService) Get(ctx context.Context, name string) (domain.Player, error) {
	if err := validateName("name", name); err != nil {
		return domain.Player{}, err
	}
	player, err := s.players.GetByName(ctx, name)
	if err != nil {
		return domain.Player{}, notFound(err, "player %q", name)
	}
	return player, nil
}

func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	return s.players.List(ctx)
}

func (s *PlayerService) Update(ctx context.Context, originalName string, player domain.Player) (domain.Player, error) {
	if err := validateName("original name", originalName); err != nil {
		return domain.Player{}, err
	}
	if err := validatePlayer(player); err != nil {
		return domain.Player{}, err
	}
	if err := s.players.Replace(ctx, originalName, player); err != nil {
		return domain.Player{}, notFound(err, "player %q", originalName)
	}
	return player, nil
}

func (s *PlayerService) Delete(ctx context.Context, name string) error {
	if err := validateName("name", name); err != nil {
		return err
	}
	return notFound(s.players.Delete(ctx, name), "player %q", name)
}
