package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kanban_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// dummyHash is compared against when the email is unknown so both login failures cost one bcrypt check.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists for a duplicate email.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID returns ErrUserNotFound when no user has the ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// Update saves every field of user.
	Update(ctx context.Context, user *entity.User) error
	// Delete removes the user row.
	Delete(ctx context.Context, id uint) error
}

// JWTGenerator issues signed bearer tokens.
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// AvatarStorage stores uploaded profile pictures and returns their public URL.
type AvatarStorage interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(url string) error
}

// BoardCleaner deletes every column and task owned by a user.
type BoardCleaner interface {
	DeleteAllByUser(ctx context.Context, userID uint) error
}

// StateStore issues and consumes single-use OAuth state values.
type StateStore interface {
	Issue(ctx context.Context) (string, error)
	Consume(ctx context.Context, state string) error
}

// GoogleProvider wraps the Google OAuth2 exchange.
type GoogleProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (*entity.GoogleProfile, error)
}

// Avatar is an uploaded profile picture.
type Avatar struct {
	Filename string
	Content  io.Reader
}

// SignupInput holds the registration form.
type SignupInput struct {
	Email    string
	Password string
	FullName string
	Avatar   *Avatar
}

// ProfileInput holds a partial profile update; nil fields are left unchanged.
type ProfileInput struct {
	FullName *string
	Avatar   *Avatar
}

// authUsecase implements authentication and account management.
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	avatars      AvatarStorage
	board        BoardCleaner
	google       GoogleProvider
	states       StateStore
}

// NewAuthUsecase creates an authUsecase. Google sign-in stays disabled until WithGoogle is called.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, avatars AvatarStorage, board BoardCleaner) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		avatars:      avatars,
		board:        board,
	}
}

// WithGoogle enables Google sign-in.
func (u *authUsecase) WithGoogle(provider GoogleProvider, states StateStore) *authUsecase {
	u.google = provider
	u.states = states
	return u
}

// validatePassword checks the password length requirement.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// Signup registers a new user with a hashed password and optional avatar.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput) error {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return ErrMissingCredentials
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Password: string(hashed), FullName: strings.TrimSpace(in.FullName)}
	if in.Avatar != nil {
		url, err := u.saveAvatar(in.Avatar)
		if err != nil {
			return err
		}
		user.ProfilePicture = url
	}

	if err := u.users.Create(ctx, user); err != nil {
		u.removeAvatar(user.ProfilePicture)
		return err
	}
	return nil
}

// Login checks the credentials and returns a signed token with the user.
// The bcrypt comparison always runs so unknown emails and wrong passwords take the same time.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", nil, err
	}
	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, user, nil
}

// Me returns the caller's profile.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile changes the display name and/or avatar. A replaced avatar file is removed best-effort.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}

	previous := user.ProfilePicture
	if in.Avatar != nil {
		url, err := u.saveAvatar(in.Avatar)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}

	if err := u.users.Update(ctx, user); err != nil {
		if in.Avatar != nil {
			u.removeAvatar(user.ProfilePicture)
		}
		return nil, err
	}

	if in.Avatar != nil {
		u.removeAvatar(previous)
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (u *authUsecase) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	if current == "" || next == "" {
		return ErrMissingCredentials
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrIncorrectPassword
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return u.users.Update(ctx, user)
}

// DeleteAccount removes the user's board, the user and the avatar file.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := u.board.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return err
	}
	u.removeAvatar(user.ProfilePicture)
	return nil
}

// GoogleAuthURL returns the consent page URL with a fresh state.
func (u *authUsecase) GoogleAuthURL(ctx context.Context) (string, error) {
	if u.google == nil || u.states == nil {
		return "", ErrOAuthDisabled
	}
	state, err := u.states.Issue(ctx)
	if err != nil {
		return "", err
	}
	return u.google.AuthCodeURL(state), nil
}

// LoginWithGoogle completes the OAuth callback: it consumes state, exchanges code,
// finds or creates the user by email and returns a signed token.
func (u *authUsecase) LoginWithGoogle(ctx context.Context, state, code string) (string, error) {
	if u.google == nil || u.states == nil {
		return "", ErrOAuthDisabled
	}
	if err := u.states.Consume(ctx, state); err != nil {
		return "", err
	}

	profile, err := u.google.FetchProfile(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !profile.EmailVerified {
		return "", ErrUnverifiedEmail
	}

	user, err := u.findOrCreateGoogleUser(ctx, profile)
	if err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (u *authUsecase) findOrCreateGoogleUser(ctx context.Context, profile *entity.GoogleProfile) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, profile.Email)
	if err == nil {
		if user.GoogleID == "" {
			user.GoogleID = profile.Subject
			if err := u.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	// The random password is never disclosed; it only satisfies the not-null constraint.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user = &entity.User{
		Email:          profile.Email,
		Password:       string(hashed),
		FullName:       profile.Name,
		ProfilePicture: profile.Picture,
		GoogleID:       profile.Subject,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			// Lost a race with a concurrent callback for the same account.
			return u.users.FindByEmail(ctx, profile.Email)
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) saveAvatar(a *Avatar) (string, error) {
	url, err := u.avatars.Save(a.Filename, a.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAvatar, err)
	}
	return url, nil
}

// removeAvatar deletes a stored avatar; failures are logged, not returned.
func (u *authUsecase) removeAvatar(url string) {
	if url == "" {
		return
	}
	if err := u.avatars.Remove(url); err != nil {
		slog.Warn("failed to remove avatar", "url", url, "error", err)
	}
}
