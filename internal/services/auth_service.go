package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/onelab-dev/community-backend/internal/config"
	"github.com/onelab-dev/community-backend/internal/dto"
	"github.com/onelab-dev/community-backend/internal/models"
	"github.com/onelab-dev/community-backend/internal/repo"
)

var (
	ErrLoginDisabled     = errors.New("test login is not available")
	ErrEmailNameRequired = errors.New("email and name are required")
	ErrInvalidSession    = errors.New("invalid or expired session")
)

// AuthService covers the credentials-based test login (non-production only)
// and session lifecycle. OAuth sign-in is handled by the external auth
// collaborator, which writes the accounts table directly.
type AuthService struct {
	users    repo.UserRepository
	sessions repo.SessionRepository
	cfg      *config.Config
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, sessions: sessions, cfg: cfg}
}

// TestLogin upserts a user by email and issues a token pair. Disabled in
// production builds.
func (s *AuthService) TestLogin(req *dto.TestLoginRequest) (*dto.AuthResponse, error) {
	if s.cfg.IsProduction() {
		return nil, ErrLoginDisabled
	}

	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, ErrEmailNameRequired
	}

	user := &models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Image: "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random",
		Role:  models.RoleUser,
	}
	if err := s.users.Upsert(user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return s.issueTokens(user)
}

// Refresh rotates a valid session and returns a fresh token pair.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.SessionToken)

	session, err := s.sessions.FindValid(tokenHash, time.Now())
	if err != nil {
		return nil, ErrInvalidSession
	}
	if err := s.sessions.DeleteByTokenHash(tokenHash); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(session.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return s.issueTokens(user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	return s.sessions.DeleteByTokenHash(hashToken(req.SessionToken))
}

// Me returns the current user record for an authenticated principal.
func (s *AuthService) Me(userID uuid.UUID) (*models.User, error) {
	return s.users.FindByID(userID)
}

func (s *AuthService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	sessionToken, err := s.createSession(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		SessionToken: sessionToken,
		User:         *user,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) createSession(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	session := &models.Session{
		ID:        uuid.New(),
		TokenHash: hashToken(rawToken),
		UserID:    user.ID,
		Expires:   time.Now().Add(s.cfg.SessionExpiry),
	}
	if err := s.sessions.Insert(session); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
