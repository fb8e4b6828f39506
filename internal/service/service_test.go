package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"taskboard/internal/apperr"
	"taskboard/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))
	require.Error(t, ComparePassword(hash, "other"))

	require.True(t, apperr.Is(ComparePassword(hash, "other"), apperr.BadCredentials))
	require.True(t, apperr.Is(ComparePassword("not-a-hash", pwd), apperr.Internal))

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	require.True(t, apperr.Is(err, apperr.BadRequest))
	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes))
	require.NoError(t, err)

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.True(t, apperr.Is(err, apperr.Internal))
}

func TestNewTokenService(t *testing.T) {
	require.Equal(t, DefaultTokenTTL, NewTokenService("s", 0).TTL())
	require.Equal(t, time.Hour, NewTokenService("s", time.Hour).TTL())
}

func TestIssueAndVerify(t *testing.T) {
	t.Cleanup(restoreGlobals)
	issued := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return issued }

	svc := NewTokenService("s", 0)
	tok, exp, err := svc.Issue("u1")
	require.NoError(t, err)
	require.Equal(t, issued.Add(24*time.Hour), exp)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.ID)
	require.Equal(t, "u1", claims.Subject)

	// 到期前一刻仍有效
	timeNow = func() time.Time { return issued.Add(24*time.Hour - time.Second) }
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	// 到期後失效
	timeNow = func() time.Time { return issued.Add(24*time.Hour + time.Second) }
	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejects(t *testing.T) {
	t.Cleanup(restoreGlobals)
	svc := NewTokenService("s", time.Minute)

	_, err := svc.Verify("invalid")
	require.ErrorIs(t, err, ErrInvalidToken)

	other, _, err := NewTokenService("other", time.Minute).Issue("u1")
	require.NoError(t, err)
	_, err = svc.Verify(other)
	require.ErrorIs(t, err, ErrInvalidToken)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = svc.Verify(tokNone)
	require.ErrorIs(t, err, ErrInvalidToken)

	noID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte("s"))
	_, err = svc.Verify(noID)
	require.ErrorIs(t, err, ErrInvalidToken)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "u1"}).SignedString([]byte("s"))
	_, err = svc.Verify(noExp)
	require.ErrorIs(t, err, ErrInvalidToken)

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = svc.Verify("whatever")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	svc := NewTokenService("", time.Minute)
	_, _, err := svc.Issue("u1")
	require.ErrorIs(t, err, ErrMissingSecret)
	_, err = svc.Verify("x")
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenServiceImplementsTokens(t *testing.T) {
	var tokens Tokens = NewTokenService("s", time.Minute)
	tok, _, err := tokens.Issue("u1")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(tok, "."))
}

func TestCheckCreateAdmin(t *testing.T) {
	require.True(t, apperr.Is(CheckCreateAdmin(model.RoleAdmin, model.RoleUser), apperr.BadRequest))
	require.True(t, apperr.Is(CheckCreateAdmin(model.RoleAdmin, model.Role("root")), apperr.BadRequest))
	require.True(t, apperr.Is(CheckCreateAdmin(model.RoleAdmin, model.RoleSuperAdmin), apperr.Forbidden))
	require.NoError(t, CheckCreateAdmin(model.RoleAdmin, model.RoleAdmin))
	require.NoError(t, CheckCreateAdmin(model.RoleSuperAdmin, model.RoleSuperAdmin))
}

func TestCheckToggleStatus(t *testing.T) {
	admin := &model.Identity{ID: "a1", Role: model.RoleAdmin}
	super := &model.Identity{ID: "s1", Role: model.RoleSuperAdmin}
	superUser := &model.User{ID: "s1", Role: model.RoleSuperAdmin}
	plain := &model.User{ID: "u1", Role: model.RoleUser}

	require.True(t, apperr.Is(CheckToggleStatus(super, superUser, false), apperr.Forbidden))
	require.True(t, apperr.Is(CheckToggleStatus(admin, superUser, false), apperr.Forbidden))
	require.True(t, apperr.Is(CheckToggleStatus(admin, superUser, true), apperr.Forbidden))
	require.True(t, apperr.Is(CheckToggleStatus(super, superUser, true), apperr.BadRequest))
	require.True(t, apperr.Is(CheckToggleStatus(admin, &model.User{ID: "a1", Role: model.RoleAdmin}, false), apperr.BadRequest))
	require.NoError(t, CheckToggleStatus(admin, plain, false))
	require.NoError(t, CheckToggleStatus(super, plain, true))
}

func TestCheckDeleteUser(t *testing.T) {
	admin := &model.Identity{ID: "a1", Role: model.RoleAdmin}
	super := &model.Identity{ID: "s1", Role: model.RoleSuperAdmin}

	require.True(t, apperr.Is(CheckDeleteUser(super, &model.User{ID: "s1", Role: model.RoleSuperAdmin}), apperr.Forbidden))
	require.True(t, apperr.Is(CheckDeleteUser(admin, &model.User{ID: "s1", Role: model.RoleSuperAdmin}), apperr.Forbidden))
	require.True(t, apperr.Is(CheckDeleteUser(admin, &model.User{ID: "a1", Role: model.RoleAdmin}), apperr.BadRequest))
	require.NoError(t, CheckDeleteUser(admin, &model.User{ID: "u1", Role: model.RoleUser}))
}

func TestCheckDeleteAccount(t *testing.T) {
	require.True(t, apperr.Is(CheckDeleteAccount(&model.User{ID: "s1", Role: model.RoleSuperAdmin}), apperr.Forbidden))
	require.NoError(t, CheckDeleteAccount(&model.User{ID: "a1", Role: model.RoleAdmin}))
	require.NoError(t, CheckDeleteAccount(&model.User{ID: "u1", Role: model.RoleUser}))
}

func TestCheckChangeRole(t *testing.T) {
	admin := &model.Identity{ID: "a1", Role: model.RoleAdmin}
	super := &model.Identity{ID: "s1", Role: model.RoleSuperAdmin}

	require.True(t, apperr.Is(CheckChangeRole(super, "u1", model.Role("boss")), apperr.BadRequest))
	require.True(t, apperr.Is(CheckChangeRole(super, "s1", model.RoleUser), apperr.BadRequest))
	require.True(t, apperr.Is(CheckChangeRole(admin, "u1", model.RoleUser), apperr.Forbidden))
	require.NoError(t, CheckChangeRole(super, "u1", model.RoleAdmin))
	require.NoError(t, CheckChangeRole(super, "u1", model.RoleUser))
}
