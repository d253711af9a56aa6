package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("User not found")
	ErrEmailExists     = core.NewConflictError("Email already registered")
	ErrInvalidPassword = errors.New("invalid password")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []User, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
	}

	Service struct {
		repo Repository
		mail core.EmailService
		conf *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mail: mailSvc, conf: conf}
}

func (svc *Service) checkEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, exclUsers); err != nil {
		if err == ErrEmailExists {
			return err
		}
		return errors.Wrap(err, "checking email uniqueness")
	}
	return nil
}

// Register creates a new student account.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Authenticate checks the credentials and stamps the last login.
// ErrNotFound is returned for an unknown email, ErrInvalidPassword for a
// known one with a bad password; the API layer maps them to 404/401 as
// the original did.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidPassword
	}
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

// RequestPasswordReset emails a tokenized reset link to the account, if one exists.
func (svc *Service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
	if err != nil {
		return err
	}

	token, err := MakeToken(usr)
	if err != nil {
		return errors.Wrap(err, "making reset token")
	}
	url := fmt.Sprintf("%s/password-reset/%s/%s", svc.conf.FrontendBaseURL, EncodeUID(usr), token)

	svc.mail.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Password Reset",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYou requested a password reset on %s.\n"+
				"Follow the link below to set a new password:\n\n%s\n\n"+
				"If you did not request this, you can safely ignore this email.",
			usr.Name, svc.conf.AppName, url,
		),
	})
	return nil
}

// ResetPassword validates the uid/token pair and updates the password.
func (svc *Service) ResetPassword(ctx context.Context, rp ResetUserPassword) error {
	invalidUID := core.NewValidationError(nil, core.FieldError{Field: "uid", Error: "invalid value"})

	id, err := decodeUID(rp.UID)
	if err != nil {
		return invalidUID
	}
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return invalidUID
		}
		return errors.Wrap(err, "finding user by uid")
	}

	if err = verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "token", Error: "invalid value"})
	}

	if err = usr.SetPassword(rp.Password); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return err
}
