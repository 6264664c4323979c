package user

import (
	"Recipe-Finder/domain"
	"Recipe-Finder/entities"
	"Recipe-Finder/pkg/auth"
	"Recipe-Finder/pkg/jwt"
	"context"
	"time"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (domain.ProfileResponse, error)
	}

	userService struct {
		userRepository  UserRepository
		authService     auth.AuthService
		jwtService      jwt.JWTService
		adminEmail      string
		moderatorEmails []string
	}
)

func NewUserService(
	userRepository UserRepository,
	authService auth.AuthService,
	jwtService jwt.JWTService,
	adminEmail string,
	moderatorEmails []string,
) UserService {
	return &userService{
		userRepository:  userRepository,
		authService:     authService,
		jwtService:      jwtService,
		adminEmail:      adminEmail,
		moderatorEmails: moderatorEmails,
	}
}

// resolveRole: the admin and moderator addresses are fixed by configuration
// and override whatever the registration form asked for.
func (s *userService) resolveRole(email, requested string) string {
	if email == s.adminEmail {
		return domain.RoleAdmin
	}
	for _, moderator := range s.moderatorEmails {
		if email == moderator {
			return domain.RoleModerator
		}
	}
	if requested == domain.RoleChef {
		return domain.RoleChef
	}
	return domain.RoleRecipeSeeker
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return domain.AuthResponse{}, domain.ErrPasswordMismatch
	}

	providerUser, err := s.authService.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	role := s.resolveRole(req.Email, req.Role)
	now := time.Now()
	profile := &entities.User{
		Email:             req.Email,
		Role:              role,
		CreatedAt:         entities.EpochSeconds(now),
		CreatedAtReadable: now.Format("2006-01-02 15:04:05"),
	}
	if err := s.userRepository.CreateUser(ctx, providerUser.UID, profile); err != nil {
		return domain.AuthResponse{}, err
	}

	return domain.AuthResponse{
		UserID: providerUser.UID,
		Email:  req.Email,
		Role:   role,
		Token:  s.jwtService.GenerateTokenUser(providerUser.UID, req.Email, role),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	providerUser, err := s.authService.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	// The stored profile carries the role; a login from before the profile
	// write completed falls back to role resolution from the email alone.
	role := s.resolveRole(req.Email, "")
	if profile, found, err := s.userRepository.GetUser(ctx, providerUser.UID); err == nil && found {
		role = profile.Role
	}

	return domain.AuthResponse{
		UserID: providerUser.UID,
		Email:  req.Email,
		Role:   role,
		Token:  s.jwtService.GenerateTokenUser(providerUser.UID, req.Email, role),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	profile, found, err := s.userRepository.GetUser(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}
	if !found {
		return domain.ProfileResponse{}, domain.ErrUserNotFound
	}
	return domain.ProfileResponse{
		UserID:    userID,
		Email:     profile.Email,
		Role:      profile.Role,
		CreatedAt: profile.CreatedAt,
	}, nil
}
