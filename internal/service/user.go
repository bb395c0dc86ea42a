package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GophAuth/internal/model"
	"GophAuth/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — пользователи, сессии и токены эталонного сервера.
type UserService struct {
	users    repo.UserRepository
	roles    repo.RoleRepository
	sessions repo.SessionRepository
	secret   string
	ttl      time.Duration
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func NewUserService(
	users repo.UserRepository,
	roles repo.RoleRepository,
	sessions repo.SessionRepository,
	secret string,
	ttl time.Duration,
	logger *zap.SugaredLogger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UserService{
		users:    users,
		roles:    roles,
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register создаёт пользователя с ролью "user".
func (s *UserService) Register(ctx context.Context, login, password, name string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	existing, err := s.users.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.CreateUser(ctx, &model.User{Login: login, Password: string(hash), Name: name}, model.RoleUser)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("user registered", "login", login, "id", user.ID)
	return user, nil
}

// Login проверяет пароль, открывает сессию и возвращает подписанный токен.
func (s *UserService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	session := &model.Session{ID: uuid.NewString(), UserID: user.ID, ExpiresAt: now.Add(s.ttl)}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	token, err := issueToken(s.secret, session.ID, user.Login, now, s.ttl)
	if err != nil {
		return "", err
	}
	s.logger.Infow("session opened", "login", login, "session", session.ID)
	return token, nil
}

// ValidateToken возвращает логин владельца токена.
// Токен валиден, если подпись верна, срок не истёк, сессия не отозвана
// и subject совпадает с владельцем сессии.
func (s *UserService) ValidateToken(ctx context.Context, token string) (string, error) {
	claims, err := parseToken(s.secret, token, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if !session.Active(s.now()) {
		return "", ErrInvalidToken
	}
	owner, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if owner == nil || owner.Login != claims.Subject {
		s.logger.Warnw("token subject does not match session owner", "session", session.ID, "subject", claims.Subject)
		return "", ErrInvalidToken
	}
	return owner.Login, nil
}

// Logout отзывает сессию токена. Неизвестный, отозванный или истёкший токен — не ошибка.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := parseToken(s.secret, token, jwt.WithTimeFunc(s.now))
	if err != nil {
		if isExpired(err) {
			s.logger.Debugw("logout with expired token")
		}
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.ID, s.now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.Infow("session closed", "login", claims.Subject, "session", claims.ID)
	return nil
}

// Profile возвращает публичный профиль пользователя.
func (s *UserService) Profile(ctx context.Context, login string) (*model.Profile, error) {
	user, err := s.lookup(ctx, login)
	if err != nil {
		return nil, err
	}
	p := model.ProfileOf(user)
	return &p, nil
}

// Roles возвращает роли пользователя.
func (s *UserService) Roles(ctx context.Context, login string) ([]string, error) {
	user, err := s.lookup(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.roles.ListRoles(ctx, user.ID)
}

// PurgeExpiredSessions удаляет истёкшие сессии.
func (s *UserService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

func (s *UserService) lookup(ctx context.Context, login string) (*model.User, error) {
	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
