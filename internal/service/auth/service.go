package auth

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrms-core/hrms-backend-go/internal/domain/audit"
	"github.com/hrms-core/hrms-backend-go/internal/domain/auth"
	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuditRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

type Service struct {
	userRepo      user.UserRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService // nil when Google login is not configured
	auditor       AuditRecorder
}

func NewService(userRepo user.UserRepository, jwtService jwt.Service, googleService oauth.GoogleService, auditor AuditRecorder) *Service {
	return &Service{
		userRepo:      userRepo,
		jwtService:    jwtService,
		googleService: googleService,
		auditor:       auditor,
	}
}

func (s *Service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}
	if u.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "login",
		Module:      "auth",
		EntityType:  "user",
		EntityID:    u.ID,
		PerformedBy: u.ID,
	})
	return resp, nil
}

// Refresh rotates the refresh token: the presented token is verified,
// revoked, and a fresh pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	if s.jwtService.IsTokenRevoked(refreshToken) {
		return auth.LoginResponse{}, auth.ErrTokenRevoked
	}

	token, err := jwtauth.VerifyToken(s.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return auth.LoginResponse{}, auth.ErrTokenExpired
		}
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	s.jwtService.RevokeToken(refreshToken)
	return s.issueTokens(u)
}

func (s *Service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken != "" {
		s.jwtService.RevokeToken(refreshToken)
	}
}

// GoogleRedirectURL starts the OAuth2 flow. The state doubles as a
// CSRF token bound to the caller's user agent.
func (s *Service) GoogleRedirectURL(userAgent string) (url string, state string, err error) {
	if s.googleService == nil {
		return "", "", auth.ErrInvalidCredentials
	}
	state = s.googleService.GenerateState(userAgent)
	return s.googleService.RedirectURL(state), state, nil
}

// GoogleCallback completes the OAuth2 flow. Only existing accounts can
// sign in with Google; there is no self-signup.
func (s *Service) GoogleCallback(ctx context.Context, code string) (auth.LoginResponse, error) {
	if s.googleService == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	oauthToken, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	info, err := s.googleService.VerifyUser(ctx, oauthToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrOAuthEmailUnverified
	}

	u, err := s.userRepo.GetByOAuth(ctx, "google", info.GoogleID)
	if errors.Is(err, user.ErrUserNotFound) {
		u, err = s.userRepo.GetByEmail(ctx, info.Email)
	}
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	resp, err := s.issueTokens(u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	s.auditor.Record(ctx, audit.Entry{
		Action:      "login_google",
		Module:      "auth",
		EntityType:  "user",
		EntityID:    u.ID,
		PerformedBy: u.ID,
	})
	return resp, nil
}

func (s *Service) issueTokens(u user.User) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		Role:                  string(u.Role),
		EmployeeID:            u.EmployeeID,
	}, nil
}
