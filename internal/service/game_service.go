package service

import (
	"context"

	"go.uber.org/zap"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/repository"
)

// GameService coordina reglas de negocio para partidos.
type GameService struct {
	logger *zap.Logger
	games  repository.GameRepository
}

func NewGameService(logger *zap.Logger, games repository.GameRepository) *GameService {
	return &GameService{logger: logger, games: games}
}

func validateGame(game domain.Game) error {
	if err := validateDate(game.Date); err != nil {
		return err
	}
	if err := validateName("winning team", game.WinningTeam); err != nil {
		return err
	}
	if err := validateName("losing team", game.LosingTeam); err != nil {
		return err
	}
	return validateStat("rating", game.Rating)
}

func validateGameKey(team, date string) error {
	if err := validateName("team", team); err != nil {
		return err
	}
	return validateDate(date)
}

func (s *GameService) Create(ctx context.Context, game domain.Game) (domain.Game, error) {
	if err := validateGame(game); err != nil {
		return domain.Game{}, err
	}
	created, err := s.games.Create(ctx, game)
	if err != nil {
		s.logger.Error("insert game failed", zap.String("date", game.Date), zap.Error(err))
		return domain.Game{}, err
	}
	return created, nil
}

// Get busca el partido de la fecha en el que jugó team, ganara o perdiera.
func (s *GameService) Get(ctx context.Context, team, date string) (domain.Game, error) {
	if err := validateGameKey(team, date); err != nil {
		return domain.Game{}, err
	}
	game, err := s.games.GetByTeamAndDate(ctx, team, date)
	if err != nil {
		return domain.Game{}, notFound(err, "game %s/%s", team, date)
	}
	return game, nil
}

func (s *GameService) List(ctx context.Context) ([]domain.Game, error) {
	return s.games.List(ctx)
}

func (s *GameService) Update(ctx context.Context, targetTeam, targetDate string, game domain.Game) (domain.Game, error) {
	if err := validateGameKey(targetTeam, targetDate); err != nil {
		return domain.Game{}, err
	}
	if err := validateGame(game); err != nil {
		return domain.Game{}, err
	}
	if err := s.games.Replace(ctx, targetTeam, targetDate, game); err != nil {
		return domain.Game{}, notFound(err, "game %s/%s", targetTeam, targetDate)
	}
	return game, nil
}

func (s *GameService) Delete(ctx context.Context, team, date string) error {
	if err := validateGameKey(team, date); err != nil {
		return err
	}
	return notFound(s.games.Delete(ctx, team, date), "game %s/%s", team, date)
}
