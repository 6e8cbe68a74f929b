package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/internal/repository"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	jwtutil "github.com/Dias221467/health-o-mania/pkg/jwt"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Mailer sends plain text email.
type Mailer interface {
	Send(to, subject, body string) error
}

const userCodeAttempts = 10

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo        repository.Users
	mailer      Mailer
	jwtSecret   string
	tokenExpiry time.Duration
	codeSuffix  func() int
	now         func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo repository.Users, mailer Mailer, jwtSecret string, tokenExpiry time.Duration) *UserService {
	return &UserService{
		repo:        repo,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		codeSuffix:  func() int { return 100 + rand.Intn(900) },
		now:         time.Now,
	}
}

// UserCodePrefix derives the letter part of a user code from a display
// name: the first word, upper-cased, A-Z only, at most 10 letters.
func UserCodePrefix(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "USER"
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(fields[0]) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == 10 {
				break
			}
		}
	}
	if b.Len() == 0 {
		return "USER"
	}
	return b.String()
}

// Register creates an account with a fresh user code and starting
// progression, and signs the user in.
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	logger.Log.WithField("email", in.Email).Info("Registering new user")

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.New(apperr.AlreadyExists, "An account with this email already exists.")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	now := s.now().UTC()
	user := &models.User{
		Name:           in.Name,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		HashedPassword: string(hashedPwd),
		Level:          models.InitialLevel,
		XP:             0,
		XPToNextLevel:  models.InitialXPToNextLevel,
		Friends:        []string{},
		LastActiveAt:   now,
	}

	prefix := UserCodePrefix(in.Name)
	for attempt := 0; ; attempt++ {
		if attempt == userCodeAttempts {
			return nil, fmt.Errorf("could not allocate a unique user code for %q", prefix)
		}
		user.UserCode = fmt.Sprintf("%s-%d", prefix, s.codeSuffix())
		if _, err := s.repo.GetByUserCode(ctx, user.UserCode); err == nil {
			continue
		}

		err := s.repo.Create(ctx, user)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// lost a race on either the email or the code
		if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
			return nil, apperr.New(apperr.AlreadyExists, "An account with this email already exists.")
		}
		user.ID = ""
	}

	if err := s.mailer.Send(user.Email, "Welcome to Health-O-Mania",
		fmt.Sprintf("Hi %s,\n\nYour account is ready. Share your user code %s with friends so they can add you.", user.Name, user.UserCode),
	); err != nil {
		logger.Log.WithError(err).Warn("Failed to send welcome email")
	}

	logger.Log.WithFields(logrus.Fields{
		"userID":   user.ID,
		"userCode": user.UserCode,
	}).Info("User registered successfully")

	return s.issue(user)
}

// Login verifies the email and password and returns a signed token.
func (s *UserService) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validateInput(in); err != nil {
		return nil, err
	}
	invalid := apperr.New(apperr.Unauthenticated, "Invalid email or password.")

	user, err := s.repo.GetByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Log.WithField("email", in.Email).Warn("User not found")
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		logger.Log.WithField("email", in.Email).Warn("Invalid credentials")
		return nil, invalid
	}

	if err := s.repo.TouchLastActive(ctx, user.ID, s.now().UTC()); err != nil {
		logger.Log.WithError(err).Warn("Failed to update last activity")
	}
	logger.Log.WithField("userID", user.ID).Info("User authenticated successfully")
	return s.issue(user)
}

func (s *UserService) issue(user *models.User) (*models.AuthResponse, error) {
	token, err := jwtutil.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// GetProfile retrieves a user by their ID.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Your user profile could not be found.")
	}
	return user, nil
}

// UpdateProfile changes name and/or photo. User code and progression are
// not editable here.
func (s *UserService) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate) (*models.User, error) {
	if update.Empty() {
		return nil, apperr.New(apperr.InvalidArgument, "Nothing to update.")
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperr.New(apperr.InvalidArgument, "Name is required.")
		}
		update.Name = &name
	}
	if err := validateInput(update); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, id, update); err != nil {
		logger.Log.WithError(err).WithField("userID", id).Error("Failed to update user in service")
		return nil, notFound(err, "Your user profile could not be found.")
	}
	return s.GetProfile(ctx, id)
}

// UpdateLastActive records that the user did something just now.
func (s *UserService) UpdateLastActive(ctx context.Context, id string) error {
	return s.repo.TouchLastActive(ctx, id, s.now().UTC())
}
