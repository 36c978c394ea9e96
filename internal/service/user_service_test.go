package service

import (
	"context"
	"testing"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepository(db), nil, testSecret)
}

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	company := seedCompany(t, db, "Acme")

	signup := SignupRequest{
		Name:      "Alice",
		Email:     "alice@example.com",
		Password:  "secret123",
		Type:      model.UserTypeAdmin,
		CompanyID: company.ID.String(),
	}

	user, err := svc.Signup(context.Background(), signup)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.UserTypeAdmin, user.Type)
	assert.Equal(t, company.ID.String(), user.CompanyID)

	// password is stored hashed, never verbatim
	var stored model.User
	require.NoError(t, db.First(&stored, "email = ?", signup.Email).Error)
	assert.NotEqual(t, signup.Password, stored.Password)

	res, err := svc.Login(context.Background(), LoginRequest{Email: signup.Email, Password: signup.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, user.ID, res.User.ID)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(res.AccessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, company.ID.String(), claims["company_id"])
	assert.Equal(t, model.UserTypeAdmin, claims["type"])
}

func TestSignup_RejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	req := SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Type: model.UserTypeUser}

	_, err := svc.Signup(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123", Type: model.UserTypeUser,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
}

func TestGetMe(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	created, err := svc.Signup(context.Background(), SignupRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret123", Type: model.UserTypeUser,
	})
	require.NoError(t, err)

	userID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	me, err := svc.GetMe(context.Background(), model.Principal{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, created.Email, me.Email)

	_, err = svc.GetMe(context.Background(), model.Principal{UserID: uuid.New()})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
