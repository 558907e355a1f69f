package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_NormalizesMobile(t *testing.T) {
	ta := newTestApp(t, "alice\n(555) 123-4567\n")

	require.NoError(t, ta.Register(context.Background()))

	assert.Equal(t, "alice", ta.sessions.regUser)
	assert.Equal(t, "5551234567", ta.sessions.regMobile)
	assert.Contains(t, ta.out.String(), "Registration successful")
}

func TestRegister_ShowsServerMessage(t *testing.T) {
	ta := newTestApp(t, "alice\n5551234567\n")
	ta.sessions.regErr = &client.RemoteError{Status: 409, Message: "Mobile number already registered"}

	err := ta.Register(context.Background())

	require.Error(t, err)
	assert.Contains(t, ta.out.String(), "Error: Mobile number already registered")
}

func TestLogin_RequestsChallengeThenSubmitsOTP(t *testing.T) {
	stubSecret(t)
	ta := newTestApp(t, "555-123-4567\n12 34 56\n")

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, []string{"5551234567"}, ta.sessions.challenged)
	assert.Equal(t, "123456", ta.sessions.submittedOTP)
	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, "5551234567", ta.status())
	assert.Contains(t, ta.out.String(), "OTP sent to 5551234567")
	assert.Contains(t, ta.out.String(), "Login successful")
}

func TestLogin_RejectedOTPKeepsChallenge(t *testing.T) {
	stubSecret(t)
	ta := newTestApp(t, "9998887770\n000111\n")
	ta.sessions.submitErr = &client.RemoteError{Status: 401, Message: "Invalid OTP"}

	err := ta.Login(context.Background())

	require.Error(t, err)
	assert.Equal(t, models.StateChallengeSent, ta.sessions.State())
	assert.Equal(t, "otp sent to 9998887770", ta.status())
	assert.Contains(t, ta.out.String(), "Error: Invalid OTP")
	assert.Contains(t, ta.out.String(), "'resend'")
}

func TestLogin_InvalidMobileIsReported(t *testing.T) {
	ta := newTestApp(t, "12345\n")
	ta.sessions.challengeErr = &models.ValidationError{Field: "mobile_number", Reason: "enter a valid 10-digit mobile number"}

	err := ta.Login(context.Background())

	require.ErrorIs(t, err, models.ErrValidation)
	assert.Equal(t, []string{"12345"}, ta.sessions.challenged)
	assert.Empty(t, ta.sessions.submittedOTP)
	assert.Contains(t, ta.out.String(), "Error: enter a valid 10-digit mobile number")
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login()

	err := ta.Login(context.Background())

	require.ErrorIs(t, err, services.ErrAlreadyAuthenticated)
	assert.Empty(t, ta.sessions.challenged)
}

func TestEnterOTP_WithoutChallenge(t *testing.T) {
	ta := newTestApp(t, "123456\n")

	require.NoError(t, ta.EnterOTP(context.Background()))

	assert.Empty(t, ta.sessions.submittedOTP)
	assert.Contains(t, ta.out.String(), "No OTP is pending")
}

func TestResend_UsesPendingNumber(t *testing.T) {
	ta := newTestApp(t, "")
	ta.sessions.state = models.StateChallengeSent
	ta.sessions.pending = "5551234567"

	require.NoError(t, ta.Resend(context.Background()))

	assert.Equal(t, []string{"5551234567"}, ta.sessions.challenged)
	assert.Contains(t, ta.out.String(), "OTP re-sent")
}

func TestResend_UnavailableServer(t *testing.T) {
	ta := newTestApp(t, "")
	ta.sessions.state = models.StateChallengeSent
	ta.sessions.pending = "5551234567"
	ta.sessions.challengeErr = &client.RemoteError{Message: "Failed to send OTP", Err: errors.New("connection refused")}

	require.Error(t, ta.Resend(context.Background()))

	assert.Contains(t, ta.out.String(), "Failed to send OTP (server unreachable)")
}

func TestChangeNumber_ResetsAndStartsOver(t *testing.T) {
	stubSecret(t)
	ta := newTestApp(t, "1112223333\n654321\n")
	ta.sessions.state = models.StateChallengeSent
	ta.sessions.pending = "5551234567"

	require.NoError(t, ta.ChangeNumber(context.Background()))

	assert.True(t, ta.sessions.resetCalled)
	assert.Equal(t, []string{"1112223333"}, ta.sessions.challenged)
	assert.Equal(t, "654321", ta.sessions.submittedOTP)
}

func TestLogout_ClearsResultsAndKeptUpload(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login()
	ta.results.Replace(docs("1", "2"))
	ta.candidate = &models.UploadCandidate{}

	require.NoError(t, ta.Logout(context.Background()))

	assert.True(t, ta.sessions.logoutCalled)
	assert.Empty(t, ta.results.List())
	assert.Nil(t, ta.candidate)
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, "anonymous", ta.status())
}

func TestLogout_StorageErrorStillClearsState(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login()
	ta.results.Replace(docs("1"))
	ta.sessions.logoutErr = errors.New("disk I/O error")

	require.Error(t, ta.Logout(context.Background()))

	assert.Empty(t, ta.results.List())
	assert.False(t, ta.isLoggedIn())
}

func TestStatus(t *testing.T) {
	ta := newTestApp(t, "")
	ta.login()
	ta.results.Replace(docs("1", "2"))

	require.NoError(t, ta.Status(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "State:    authenticated")
	assert.Contains(t, out, "User:     5551234567")
	assert.Contains(t, out, "Results:  2")
}
