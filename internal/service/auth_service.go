package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notesync/internal/dto"
	"notesync/internal/entity"
	"notesync/internal/pkg/serverutils"
	"notesync/internal/repository/memory"
	"notesync/internal/repository/specification"
	"notesync/internal/repository/unitofwork"
	"notesync/pkg/events"
	pkgNats "notesync/pkg/nats"
	"notesync/pkg/store"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, string, error)
	Logout(token string)
	CheckSession(token string) *dto.SessionResponse
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       *memory.SessionRepository
	eventPublisher *pkgNats.Publisher
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionRepository,
	eventPublisher *pkgNats.Publisher,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		eventPublisher: eventPublisher,
	}
}

func generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	username := strings.TrimSpace(req.Username)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", serverutils.BadRequest("Username already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		Id:        uuid.New(),
		Username:  username,
		PinHash:   string(hash),
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.openSession(user)
	if err != nil {
		return nil, "", err
	}

	s.publishEvent(ctx, events.TypeUserRegistered, user.Id, map[string]interface{}{
		"username": user.Username,
	})

	return &dto.AuthResponse{
		Success:  true,
		UserId:   user.Id,
		Username: user.Username,
	}, token, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: strings.TrimSpace(req.Username)})
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", serverutils.Unauthorized("Invalid username or PIN")
	}

	if !s.verifyPin(ctx, uow, user, req.Pin) {
		return nil, "", serverutils.Unauthorized("Invalid username or PIN")
	}

	token, err := s.openSession(user)
	if err != nil {
		return nil, "", err
	}

	s.publishEvent(ctx, events.TypeUserLogin, user.Id, map[string]interface{}{
		"username": user.Username,
	})

	return &dto.AuthResponse{
		Success:  true,
		UserId:   user.Id,
		Username: user.Username,
	}, token, nil
}

// verifyPin accepts legacy plaintext PINs from pre-hashing accounts and
// rewrites them as bcrypt hashes on the first successful login.
func (s *authService) verifyPin(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, pin string) bool {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err == nil {
		return true
	}

	if !strings.HasPrefix(user.PinHash, "$2") && user.PinHash == pin {
		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err == nil {
			user.PinHash = string(hash)
			_ = uow.UserRepository().Update(ctx, user)
		}
		return true
	}

	return false
}

func (s *authService) openSession(user *entity.User) (string, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", err
	}
	s.sessions.Save(&store.Session{
		Token:     token,
		UserID:    user.Id,
		Username:  user.Username,
		CreatedAt: time.Now(),
	})
	return token, nil
}

func (s *authService) Logout(token string) {
	if token != "" {
		s.sessions.Delete(token)
	}
}

func (s *authService) CheckSession(token string) *dto.SessionResponse {
	if token == "" {
		return &dto.SessionResponse{Authenticated: false}
	}
	session, found := s.sessions.Get(token)
	if !found {
		return &dto.SessionResponse{Authenticated: false}
	}
	return &dto.SessionResponse{
		Authenticated: true,
		UserId:        &session.UserID,
		Username:      session.Username,
	}
}

func (s *authService) publishEvent(ctx context.Context, eventType string, userId uuid.UUID, payload map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	enriched := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		enriched[k] = v
	}
	enriched["userId"] = userId.String()
	_ = s.eventPublisher.Publish(ctx, events.NewBaseEvent(eventType, enriched))
}
