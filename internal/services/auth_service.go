package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"kursus/internal/apperrors"
	"kursus/internal/models"
	"kursus/internal/repositories"
	"kursus/pkg/logger"
	"kursus/pkg/mailer"
	"kursus/pkg/storage"
)

// AuthService handles the credential lifecycle: registration, email
// verification, login, token validation, profile updates and the account
// deletion cascade.
type AuthService struct {
	userRepo    repositories.UserRepository
	channelRepo repositories.ChannelRepository
	courseRepo  repositories.CourseRepository
	videoRepo   repositories.VideoRepository
	commentRepo repositories.CommentRepository
	store       storage.Store
	mail        mailer.Mailer
	notifier    Notifier
	jwtSecret   []byte
	tokenDurat  time.Duration
	codeDurat   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	channelRepo repositories.ChannelRepository,
	courseRepo repositories.CourseRepository,
	videoRepo repositories.VideoRepository,
	commentRepo repositories.CommentRepository,
	store storage.Store,
	mail mailer.Mailer,
	notifier Notifier,
	jwtSecret string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		channelRepo: channelRepo,
		courseRepo:  courseRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		store:       store,
		mail:        mail,
		notifier:    notifier,
		jwtSecret:   []byte(jwtSecret),
		tokenDurat:  10 * 24 * time.Hour, // Token valid for 10 days
		codeDurat:   10 * time.Minute,    // Verification code valid for 10 minutes
	}
}

// generateCode produces a 6-digit numeric verification code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RegisterUser registers a new user as unverified, hashes their password,
// issues a verification code and dispatches it by email. No session token is
// issued until the email is verified.
func (s *AuthService) RegisterUser(ctx context.Context, user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("email '%s' already registered: %w", user.Email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	code, err := generateCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.codeDurat)
	user.Verified = false
	user.VerificationCode = code
	user.VerificationExpires = &expires

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	// Best effort: a failed send leaves the user able to request a resend.
	if s.mail != nil {
		if err := s.mail.SendVerificationCode(ctx, user.Email, code); err != nil {
			logger.L().Warnf("failed to send verification code to %s: %v", user.Email, err)
		}
	}
	return nil
}

// VerifyEmail checks the code against the stored one and, on success, marks
// the user verified, clears the code and issues a session token.
func (s *AuthService) VerifyEmail(email, code string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user.Verified {
		return "", nil, fmt.Errorf("user %s: %w", email, apperrors.ErrAlreadyVerified)
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return "", nil, apperrors.ErrInvalidCode
	}
	if user.VerificationExpires == nil || time.Now().After(*user.VerificationExpires) {
		return "", nil, apperrors.ErrCodeExpired
	}

	user.Verified = true
	user.VerificationCode = ""
	user.VerificationExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	sanitized := user.Sanitized()
	return token, &sanitized, nil
}

// ResendVerification rotates the code and expiry and resends the email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user.Verified {
		return fmt.Errorf("user %s: %w", email, apperrors.ErrAlreadyVerified)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.codeDurat)
	user.VerificationCode = code
	user.VerificationExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if s.mail != nil {
		if err := s.mail.SendVerificationCode(ctx, user.Email, code); err != nil {
			logger.L().Warnf("failed to resend verification code to %s: %v", user.Email, err)
		}
	}
	return nil
}

// LoginUser authenticates a user and returns a session token plus the
// sanitized record. An unknown email and a wrong password report the same
// error on purpose.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	sanitized := user.Sanitized()
	return token, &sanitized, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"name":  user.Name,
		"admin": user.IsAdmin,
		"exp":   time.Now().Add(s.tokenDurat).Unix(),
		"iat":   time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT bearer token, returning the claims
// if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// GetUserByID returns the sanitized user record.
func (s *AuthService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ProfileUpdate carries the updatable profile fields. Zero values leave the
// stored value untouched.
type ProfileUpdate struct {
	Name  string `json:"name" form:"name" validate:"omitempty,min=3,max=50"`
	Email string `json:"email" form:"email" validate:"omitempty,email"`
}

// UpdateProfile applies the fields and, when a new avatar file is supplied,
// replaces the avatar reference. Without a new file the prior value is kept.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate, avatar *Upload) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if fields.Name != "" {
		user.Name = fields.Name
	}
	if fields.Email != "" {
		user.Email = fields.Email
	}
	if avatar != nil {
		ref, err := s.store.Store(ctx, storage.CategoryUserAvatar, avatar.Filename, avatar.ContentType, avatar.Data)
		if err != nil {
			// Optional upload: keep the prior reference rather than failing the update.
			logger.L().Warnf("failed to store avatar for user %s: %v", userID, err)
		} else {
			user.Avatar = ref
		}
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// DeleteAccount removes the user's courses, channels, videos and comments
// before the user record itself. The steps are independent deletes with no
// surrounding transaction; a failure surfaces immediately and leaves the
// earlier deletes in place.
func (s *AuthService) DeleteAccount(userID string) error {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	if err := s.videoRepo.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.channelRepo.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}

	broadcast(s.notifier, EventUserDeleted, map[string]string{"id": userID})
	return nil
}
