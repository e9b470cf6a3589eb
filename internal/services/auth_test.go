package services

import (
	"context"
	"testing"

	types "github.com/akademus/akademus-api/internal/domain"
	"github.com/akademus/akademus-api/internal/platform/apierr"
	"github.com/akademus/akademus-api/internal/platform/ctxutil"
)

func registerInput(email string) RegisterInput {
	return RegisterInput{Email: email, FirstName: "Ada", LastName: "Lovelace", Password: "s3cret!"}
}

func TestRegisterThenLogin(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	reg, err := ts.auth.Register(ctx, registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.AccessToken == "" {
		t.Fatalf("Register: expected token")
	}

	login, err := ts.auth.Login(ctx, "a@x.com", "s3cret!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	user, err := ts.auth.ValidateSession(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("ValidateSession: unexpected user %q", user.Email)
	}

	authCtx, err := ts.auth.SetContextFromToken(ctx, reg.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if ctxutil.UserID(authCtx) != user.ID {
		t.Fatalf("SetContextFromToken: request data not attached")
	}
	profile, err := ts.auth.Profile(authCtx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.ID != user.ID || !profile.IsActive || profile.Status != types.UserStatusActive {
		t.Fatalf("Profile: unexpected %+v", profile)
	}
	if _, err := ts.auth.Profile(ctx); !apierr.Is(err, apierr.CodeUnauthorized) {
		t.Fatalf("Profile without session: expected unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	if _, err := ts.auth.Register(ctx, registerInput("dup@x.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := ts.auth.Register(ctx, registerInput("dup@x.com"))
	requireCode(t, "Register (duplicate)", err, apierr.CodeConflict)
}

func TestRegisterDeletedEmailStaysReserved(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	u, err := ts.users.Create(ctx, CreateUserInput{Email: "gone@x.com", FirstName: "A", LastName: "B", Password: "pw"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ts.users.Remove(ctx, u.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	_, err = ts.auth.Register(ctx, registerInput("gone@x.com"))
	requireCode(t, "Register (deleted email)", err, apierr.CodeConflict)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServices(t)
	_, err := ts.auth.Register(context.Background(), RegisterInput{Email: "nope", Password: ""})
	requireCode(t, "Register (invalid)", err, apierr.CodeValidation)

	ae := apierr.From(err)
	for _, field := range []string{"email", "firstName", "lastName", "password"} {
		if _, ok := ae.Fields[field]; !ok {
			t.Fatalf("Register (invalid): missing field error for %s: %+v", field, ae.Fields)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	reg, err := ts.auth.Register(ctx, registerInput("b@x.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err = ts.auth.Login(ctx, "b@x.com", "wrong")
	requireCode(t, "Login (wrong password)", err, apierr.CodeUnauthorized)

	_, err = ts.auth.Login(ctx, "nobody@x.com", "s3cret!")
	requireCode(t, "Login (unknown email)", err, apierr.CodeUnauthorized)
	if err.Error() != invalidCredentials {
		t.Fatalf("Login (unknown email): expected shared message, got %q", err.Error())
	}

	user, err := ts.auth.ValidateSession(ctx, reg.AccessToken)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}

	suspended := types.UserStatusSuspended
	if _, err := ts.users.Update(ctx, user.ID, UpdateUserInput{Status: suspended}); err != nil {
		t.Fatalf("Update (suspend): %v", err)
	}
	_, err = ts.auth.Login(ctx, "b@x.com", "s3cret!")
	requireCode(t, "Login (suspended)", err, apierr.CodeUnauthorized)
	_, err = ts.auth.ValidateSession(ctx, reg.AccessToken)
	requireCode(t, "ValidateSession (suspended)", err, apierr.CodeUnauthorized)

	if _, err := ts.users.Update(ctx, user.ID, UpdateUserInput{Status: types.UserStatusActive}); err != nil {
		t.Fatalf("Update (reactivate): %v", err)
	}
	if err := ts.users.Remove(ctx, user.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	_, err = ts.auth.Login(ctx, "b@x.com", "s3cret!")
	requireCode(t, "Login (deleted)", err, apierr.CodeUnauthorized)
	_, err = ts.auth.ValidateSession(ctx, reg.AccessToken)
	requireCode(t, "ValidateSession (deleted)", err, apierr.CodeUnauthorized)
}

func TestValidateSessionRejectsForeignToken(t *testing.T) {
	ts := newTestServices(t)
	foreign := NewTokenIssuer("another-secret", "akademus-api", 0)
	reg, err := ts.auth.Register(context.Background(), registerInput("c@x.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	user, err := ts.auth.ValidateSession(context.Background(), reg.AccessToken)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	tok, err := foreign.Issue(user.ID, user.Email)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	_, err = ts.auth.ValidateSession(context.Background(), tok)
	requireCode(t, "ValidateSession (foreign key)", err, apierr.CodeUnauthorized)
}
