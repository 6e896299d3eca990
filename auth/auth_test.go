package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database: every pooled connection must see the
	// same data, and every test must get a fresh one.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func sampleRequest() RegisterRequest {
	return RegisterRequest{
		Name:     "Carla",
		Surname:  "Mendez",
		Phone:    "555-0001",
		Email:    "carla@example.com",
		Password: "secret",
	}
}

func TestHashPassword(t *testing.T) {
	h := HashPassword("secret")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashPassword("secret"))
	assert.NotEqual(t, h, HashPassword("Secret"))
}

func TestRegisterAccount(t *testing.T) {
	db := testDB(t)

	user, err := RegisterAccount(db, sampleRequest(), models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, user.Role)
	assert.Equal(t, HashPassword("secret"), user.Password)
	assert.NotZero(t, user.ID)
}

func TestRegisterDuplicateEmailAndPhone(t *testing.T) {
	db := testDB(t)
	_, err := RegisterAccount(db, sampleRequest(), models.RoleClient)
	require.NoError(t, err)

	// Same email, different phone.
	dup := sampleRequest()
	dup.Phone = "555-0099"
	_, err = RegisterAccount(db, dup, models.RoleClient)
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "phone")

	// Same phone, different email.
	dup = sampleRequest()
	dup.Email = "other@example.com"
	_, err = RegisterAccount(db, dup, models.RoleClient)
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "phone")
	assert.NotContains(t, fields, "email")
}

func TestRegisterMissingFields(t *testing.T) {
	db := testDB(t)

	_, err := RegisterAccount(db, RegisterRequest{}, models.RoleClient)
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	for _, f := range []string{"name", "surname", "phone", "email", "password"} {
		assert.Contains(t, fields, f)
	}
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	_, err := RegisterAccount(db, sampleRequest(), models.RoleClient)
	require.NoError(t, err)

	user, err := Authenticate(db, "carla@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Carla", user.Name)

	_, err = Authenticate(db, "carla@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate(db, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateBlocked(t *testing.T) {
	db := testDB(t)
	user, err := RegisterAccount(db, sampleRequest(), models.RoleClient)
	require.NoError(t, err)
	require.NoError(t, db.Model(&user).Update("blocked", true).Error)

	_, err = Authenticate(db, "carla@example.com", "secret")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestIssueToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := IssueToken(models.User{ID: 3, Name: "Carla", Role: models.RoleClient})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}
