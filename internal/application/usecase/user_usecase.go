// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authdom "storefront/internal/domain/auth"
	common "storefront/internal/domain/common"
	mediadom "storefront/internal/domain/media"
	userdom "storefront/internal/domain/user"
)

// PasswordHasher is the outbound credential-hashing port. The core
// only ever sees opaque hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

var (
	ErrAlreadyLoggedIn    = common.Kind(common.ErrInvalidInput, "usecase: already authenticated, log out first")
	ErrEmailTaken         = common.Kind(common.ErrConflict, "usecase: user with the given email exists")
	ErrInvalidCredentials = common.Kind(common.ErrUnauthorized, "usecase: invalid credentials")
	ErrNotAdmin           = common.Kind(common.ErrForbidden, "usecase: not authorized, not admin")
)

// RegisterInput carries the public registration payload plus an
// optional profile image.
type RegisterInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	BirthDate *time.Time
	Address   string
	Image     []byte
}

// UserUsecase owns account lifecycle and profile media.
type UserUsecase struct {
	users    userdom.Repository
	hasher   PasswordHasher
	uploader *MediaUploader
	store    mediadom.Store
	now      func() time.Time
}

func NewUserUsecase(users userdom.Repository, hasher PasswordHasher, uploader *MediaUploader, store mediadom.Store) *UserUsecase {
	return &UserUsecase{users: users, hasher: hasher, uploader: uploader, store: store, now: time.Now}
}

// Register creates an account, then uploads the optional profile
// picture and persists its URL. A failed image upload still leaves a
// created account and says so. A caller holding a verified token that
// already maps to an account is rejected; a verified token without an
// account registers under its subject id so the two stay linked.
func (u *UserUsecase) Register(ctx context.Context, principal authdom.Principal, in RegisterInput) (userdom.User, UploadReport, error) {
	id := uuid.NewString()
	if !principal.IsAnonymous() {
		if _, err := u.users.GetByID(ctx, principal.ID); err == nil {
			return userdom.User{}, UploadReport{}, ErrAlreadyLoggedIn
		} else if !errors.Is(err, userdom.ErrNotFound) {
			return userdom.User{}, UploadReport{}, err
		}
		id = principal.ID
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return userdom.User{}, UploadReport{}, ErrEmailTaken
	} else if !errors.Is(err, userdom.ErrNotFound) {
		return userdom.User{}, UploadReport{}, err
	}

	if strings.TrimSpace(in.Password) == "" {
		return userdom.User{}, UploadReport{}, userdom.ErrInvalidPassword
	}
	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return userdom.User{}, UploadReport{}, err
	}

	usr, err := userdom.New(id, in.Name, email, in.Phone, hash, in.BirthDate, in.Address, u.now())
	if err != nil {
		return userdom.User{}, UploadReport{}, err
	}

	created, err := u.users.Create(ctx, usr)
	if err != nil {
		return userdom.User{}, UploadReport{}, err
	}

	if len(in.Image) == 0 {
		return created, UploadReport{}, nil
	}
	return u.applyProfilePic(ctx, created.ID, in.Image)
}

// GetProfile returns the caller's own account.
func (u *UserUsecase) GetProfile(ctx context.Context, principal authdom.Principal) (userdom.User, error) {
	if principal.IsAnonymous() {
		return userdom.User{}, ErrNotLoggedIn
	}
	return u.users.GetByID(ctx, principal.ID)
}

// UpdateProfile merges non-empty profile fields.
func (u *UserUsecase) UpdateProfile(ctx context.Context, principal authdom.Principal, patch userdom.ProfilePatch) (userdom.User, error) {
	if principal.IsAnonymous() {
		return userdom.User{}, ErrNotLoggedIn
	}
	return u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		usr.ApplyProfilePatch(patch)
		return nil
	})
}

// UpdateProfilePic replaces the profile picture. One object per user,
// overwritten in place.
func (u *UserUsecase) UpdateProfilePic(ctx context.Context, principal authdom.Principal, image []byte) (userdom.User, UploadReport, error) {
	if principal.IsAnonymous() {
		return userdom.User{}, UploadReport{}, ErrNotLoggedIn
	}
	if len(image) == 0 {
		return userdom.User{}, UploadReport{}, userdom.ErrInvalidID
	}
	return u.applyProfilePic(ctx, principal.ID, image)
}

// DeleteProfilePic removes the stored object and clears the URL. A
// missing object still clears the URL and surfaces media.ErrNotFound.
func (u *UserUsecase) DeleteProfilePic(ctx context.Context, principal authdom.Principal) error {
	if principal.IsAnonymous() {
		return ErrNotLoggedIn
	}

	delErr := u.store.Delete(ctx, mediadom.ProfileObjectPath(principal.ID))
	if delErr != nil && !errors.Is(delErr, mediadom.ErrNotFound) {
		return delErr
	}

	if _, err := u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		usr.ImageURL = ""
		return nil
	}); err != nil {
		return err
	}
	return delErr
}

// ChangePassword verifies the old password before rehashing.
func (u *UserUsecase) ChangePassword(ctx context.Context, principal authdom.Principal, oldPassword, newPassword string) error {
	if principal.IsAnonymous() {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(newPassword) == "" {
		return userdom.ErrInvalidPassword
	}

	usr, err := u.users.GetByID(ctx, principal.ID)
	if err != nil {
		return err
	}
	if !u.hasher.Compare(usr.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	_, err = u.users.Mutate(ctx, principal.ID, func(usr *userdom.User) error {
		usr.PasswordHash = hash
		return nil
	})
	return err
}

// CreateAdmin provisions an account holding both the admin and staff
// flags. Admin only.
func (u *UserUsecase) CreateAdmin(ctx context.Context, principal authdom.Principal, email, phone, password string) (userdom.User, error) {
	return u.createPrivileged(ctx, principal, email, phone, password, true)
}

// CreateStaff provisions a staff-only account. Admin only.
func (u *UserUsecase) CreateStaff(ctx context.Context, principal authdom.Principal, email, phone, password string) (userdom.User, error) {
	return u.createPrivileged(ctx, principal, email, phone, password, false)
}

func (u *UserUsecase) createPrivileged(ctx context.Context, principal authdom.Principal, email, phone, password string, isAdmin bool) (userdom.User, error) {
	if !principal.IsAdmin {
		return userdom.User{}, ErrNotAdmin
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return userdom.User{}, userdom.ErrInvalidEmail
	}
	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return userdom.User{}, ErrEmailTaken
	} else if !errors.Is(err, userdom.ErrNotFound) {
		return userdom.User{}, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return userdom.User{}, err
	}
	usr, err := userdom.NewPrivileged(uuid.NewString(), email, phone, hash, isAdmin, u.now())
	if err != nil {
		return userdom.User{}, err
	}
	return u.users.Create(ctx, usr)
}

func (u *UserUsecase) applyProfilePic(ctx context.Context, userID string, image []byte) (userdom.User, UploadReport, error) {
	report := u.uploader.UploadAll(ctx, [][]byte{image}, func(int) string {
		return mediadom.ProfileObjectPath(userID)
	})
	if len(report.URLs) == 0 {
		usr, err := u.users.GetByID(ctx, userID)
		return usr, report, err
	}

	updated, err := u.users.Mutate(ctx, userID, func(usr *userdom.User) error {
		usr.ImageURL = report.URLs[0]
		return nil
	})
	return updated, report, err
}
