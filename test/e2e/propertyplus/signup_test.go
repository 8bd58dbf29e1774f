package propertyplus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propertyplus/propclient/pkg/propsdk"
)

func TestSignupFlow(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()
	email, username := freshAccount()

	exists, err := client.CheckUsername(ctx, username)
	require.NoError(t, err)
	require.False(t, exists)

	registerUser(t, client, srv, email, username)

	exists, err = client.CheckUsername(ctx, username)
	require.NoError(t, err)
	require.True(t, exists)

	sess := loginUser(t, client, email)
	user := sess.User()
	require.Equal(t, username, user.Username)
	require.Equal(t, email, user.Email)
	require.Equal(t, "seller", user.Role)
	require.False(t, user.TwoFAEnabled)
	require.Equal(t, "avatar_teal.svg", user.ProfileImage)
}

func TestSignupRejectsWrongOTP(t *testing.T) {
	client, _ := setupStub(t)
	ctx := context.Background()
	email, _ := freshAccount()

	require.NoError(t, client.SendSignupOTP(ctx, email))
	err := client.VerifySignupOTP(ctx, email, "000000")
	require.Error(t, err)
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "Invalid OTP. Please try again.", err.Error())
}

func TestSignupResendReusesCode(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()
	email, _ := freshAccount()

	require.NoError(t, client.SendSignupOTP(ctx, email))
	first := lastCode(t, srv, email)

	// A resend inside the reuse window delivers the same code.
	require.NoError(t, client.SendSignupOTP(ctx, email))
	require.Equal(t, first, lastCode(t, srv, email))
}

func TestSignupRejectsRegisteredEmail(t *testing.T) {
	client, srv := setupStub(t)
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)

	err := client.SendSignupOTP(context.Background(), email)
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "Email already registered.", err.Error())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client, srv := setupStub(t)
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)

	_, err := client.Login(context.Background(), email, "wrong-password")
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "Invalid email or password", err.Error())
}

func TestLoginByUsername(t *testing.T) {
	client, srv := setupStub(t)
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)

	result, err := client.Login(context.Background(), username, testPassword)
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	require.Equal(t, email, result.Session.User().Email)
}

func TestForgotPasswordFlow(t *testing.T) {
	client, srv := setupStub(t)
	ctx := context.Background()
	email, username := freshAccount()
	registerUser(t, client, srv, email, username)

	require.NoError(t, client.SendForgotOTP(ctx, email))
	require.NoError(t, client.VerifyForgotOTP(ctx, email, lastCode(t, srv, email)))
	require.NoError(t, client.ResetPassword(ctx, email, "N3w!password"))

	_, err := client.Login(ctx, email, testPassword)
	require.True(t, propsdk.IsRejection(err))

	result, err := client.Login(ctx, email, "N3w!password")
	require.NoError(t, err)
	require.NotNil(t, result.Session)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	client, _ := setupStub(t)
	err := client.SendForgotOTP(context.Background(), "ghost@example.com")
	require.True(t, propsdk.IsRejection(err))
	require.Equal(t, "No account exists with this email.", err.Error())
}
