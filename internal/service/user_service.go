package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"athletic-metrics/internal/domain"
	"athletic-metrics/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrRateLimited        = errors.New("rate limited")
)

const defaultHashConcurrency = 4

// UserService coordina reglas de negocio para usuarios y actúa como
// verificador de credenciales de SessionService.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	cost   int

	// hashSlots acota cuántas comparaciones bcrypt corren a la vez.
	hashSlots *semaphore.Weighted

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, hashConcurrency int) *UserService {
	return NewUserServiceWithCost(logger, users, hashConcurrency, bcrypt.DefaultCost)
}

// NewUserServiceWithCost permite fijar el costo de bcrypt (los tests usan bcrypt.MinCost).
func NewUserServiceWithCost(logger *zap.Logger, users repository.UserRepository, hashConcurrency, cost int) *UserService {
	if hashConcurrency <= 0 {
		hashConcurrency = defaultHashConcurrency
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &UserService{
		logger:    logger,
		users:     users,
		cost:      cost,
		hashSlots: semaphore.NewWeighted(int64(hashConcurrency)),
	}
}

// Register crea un usuario sin privilegios de administrador.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	return s.create(ctx, username, password, false)
}

func (s *UserService) create(ctx context.Context, username, password string, administrator bool) (domain.User, error) {
	if err := validateName("username", username); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return domain.User{}, err
	}
	if err := s.ensureAvailable(ctx, username); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hash(ctx, password)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.Create(ctx, domain.User{
		Username:      username,
		PasswordHash:  hash,
		Administrator: administrator,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		s.logger.Error("insert user failed", zap.String("username", username), zap.Error(err))
		return domain.User{}, err
	}
	s.logger.Info("user registered", zap.String("username", username), zap.Bool("administrator", administrator))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	if err := validateName("username", username); err != nil {
		return domain.User{}, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, notFound(err, "user %q", username)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

type UpdateUserInput struct {
	OldUsername   string
	Username      string
	Password      string
	Administrator bool
}

// Update reemplaza al usuario OldUsername. La contraseña se vuelve a hashear.
func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (domain.User, error) {
	if err := validateName("old username", input.OldUsername); err != nil {
		return domain.User{}, err
	}
	if err := validateName("username", input.Username); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(input.Password); err != nil {
		return domain.User{}, err
	}
	if !strings.EqualFold(input.OldUsername, input.Username) {
		if err := s.ensureAvailable(ctx, input.Username); err != nil {
			return domain.User{}, err
		}
	}

	hash, err := s.hash(ctx, input.Password)
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{
		Username:      input.Username,
		PasswordHash:  hash,
		Administrator: input.Administrator,
	}
	if err := s.users.Replace(ctx, input.OldUsername, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.User{}, fmt.Errorf("%w: %q", ErrUsernameTaken, input.Username)
		}
		return domain.User{}, notFound(err, "user %q", input.OldUsername)
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := validateName("username", username); err != nil {
		return err
	}
	return notFound(s.users.Delete(ctx, username), "user %q", username)
}

// EnsureAdmin garantiza que username exista como administrador. Si el usuario
// no existe lo crea con password; si existe sólo lo promueve y conserva su
// contraseña actual.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (domain.User, bool, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user, err := s.create(ctx, username, password, true)
		return user, err == nil, err
	case err != nil:
		return domain.User{}, false, err
	}

	if password != "" {
		s.logger.Warn("existing account keeps its password; use PUT /users to change it",
			zap.String("username", existing.Username),
		)
	}
	if existing.Administrator {
		return existing, false, nil
	}
	existing.Administrator = true
	if err := s.users.Replace(ctx, existing.Username, existing); err != nil {
		return domain.User{}, false, err
	}
	s.logger.Info("user promoted to administrator", zap.String("username", existing.Username))
	return existing, false, nil
}

// VerifyCredentials compara la contraseña con el hash guardado. Un usuario
// inexistente y una contraseña incorrecta devuelven el mismo error.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (domain.Identity, error) {
	if validateName("username", username) != nil || password == "" {
		return domain.Identity{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Identity{}, err
	}

	hash := []byte(user.PasswordHash)
	if err != nil || len(hash) == 0 {
		hash = s.placeholderHash()
	}
	if err := s.compare(ctx, hash, password); err != nil {
		return domain.Identity{}, err
	}
	if user.Username == "" {
		return domain.Identity{}, ErrInvalidCredentials
	}
	return domain.Identity{Username: user.Username, Administrator: user.Administrator}, nil
}

func (s *UserService) ensureAvailable(ctx context.Context, username string) error {
	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) hash(ctx context.Context, password string) (string, error) {
	if err := s.hashSlots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSlots.Release(1)
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *UserService) compare(ctx context.Context, hash []byte, password string) error {
	if err := s.hashSlots.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.hashSlots.Release(1)
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// placeholderHash sirve para que un usuario inexistente cueste lo mismo que
// una contraseña incorrecta.
func (s *UserService) placeholderHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), s.cost)
	})
	return s.dummyHash
}
