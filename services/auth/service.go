package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MarcGrol/bookstorebackend/lib/myerrors"
	"github.com/MarcGrol/bookstorebackend/lib/mylog"
	"github.com/MarcGrol/bookstorebackend/lib/mystore"
	"github.com/MarcGrol/bookstorebackend/lib/mytime"
)

type service struct {
	userStore mystore.Store[User]
	tokenizer *Tokenizer
	nower     mytime.Nower
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(userStore mystore.Store[User], tokenizer *Tokenizer, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		userStore: userStore,
		tokenizer: tokenizer,
		nower:     nower,
		logger:    logger,
	}
}

func (s *service) register(c context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return myerrors.NewInvalidInputError(fmt.Errorf("username and password are required"))
	}

	s.logger.Log(c, creds.Username, mylog.SeverityInfo, "Registering user %s", creds.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error hashing password: %s", err))
	}

	return s.userStore.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.userStore.Get(c, creds.Username)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if exists {
			return myerrors.NewConflictError(fmt.Errorf("username %s already taken", creds.Username))
		}

		err = s.userStore.Put(c, creds.Username, User{
			Username:     creds.Username,
			PasswordHash: string(hash),
			Role:         RoleUser,
			CreatedAt:    s.nower.Now(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

func (s *service) authenticate(c context.Context, creds Credentials) (string, error) {
	s.logger.Log(c, creds.Username, mylog.SeverityInfo, "Authenticating user %s", creds.Username)

	user, exists, err := s.userStore.Get(c, creds.Username)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}
	if !exists {
		return "", myerrors.NewAuthenticationError(fmt.Errorf("user %s not found", creds.Username))
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password))
	if err != nil {
		return "", myerrors.NewAuthenticationError(fmt.Errorf("wrong password for user %s", creds.Username))
	}

	token, err := s.tokenizer.GenerateToken(user.Username, user.Role, s.nower.Now())
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	return token, nil
}
