package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/store"
	"github.com/MKhiriev/go-tours/internal/validators"
	"github.com/MKhiriev/go-tours/models"
)

type userService struct {
	*resourceService[models.User]

	userRepository store.UserRepository
	photos         store.PhotoStorage
	now            func() time.Time

	logger *logger.Logger
}

func NewUserService(storages *store.Storages, validator validators.Validator, logger *logger.Logger) UserService {
	s := &userService{
		userRepository: storages.UserRepository,
		photos:         storages.PhotoStorage,
		now:            time.Now,
		logger:         logger,
	}
	s.resourceService = newResourceService("user", storages.UserRepository, validator, models.NewUser, hooks[models.User]{}, logger)

	return s
}

// UpdateMe changes name, email and photo of the account. Credentials and
// role are never touched.
func (s *userService) UpdateMe(ctx context.Context, userID string, req models.UpdateMeRequest) (models.User, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, err
	}

	return s.UpdateByID(ctx, userID, func(u *models.User) error {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Email != nil {
			u.Email = strings.ToLower(*req.Email)
		}
		if req.Photo != nil {
			u.Photo = *req.Photo
		}
		return nil
	})
}

func (s *userService) DeleteMe(ctx context.Context, userID string) error {
	return s.DeleteByID(ctx, userID)
}

// UploadPhoto stores the avatar as user-<id>-<unix>.jpeg.
func (s *userService) UploadPhoto(ctx context.Context, userID, contentType string, r io.Reader, size int64) (string, error) {
	log := logger.FromContext(ctx)

	if !strings.HasPrefix(contentType, "image/") {
		return "", app.Wrap(ErrNotAnImage, app.MsgNotAnImage)
	}

	name := fmt.Sprintf("user-%s-%d.jpeg", userID, s.now().Unix())
	if err := s.photos.Save(ctx, name, contentType, r, size); err != nil {
		log.Err(err).Str("func", "*userService.UploadPhoto").Str("photo", name).Msg("error saving photo")
		return "", err
	}

	return name, nil
}

func (s *userService) OpenPhoto(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.photos.Open(ctx, name)
}
