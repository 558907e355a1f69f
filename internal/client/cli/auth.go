package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
)

// Register prompts for a username and a mobile number and registers them.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Enter your 10-digit mobile number", a.out)
	if err != nil {
		return err
	}

	if err := a.sessions.Register(ctx, username, models.NormalizeMobile(raw)); err != nil {
		a.notify.Error(err)
		return err
	}
	a.notify.Success("Registration successful. You can now log in.")
	return nil
}

// Login requests an OTP for the entered mobile number and then asks for it.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.notify.Error(services.ErrAlreadyAuthenticated)
		return services.ErrAlreadyAuthenticated
	}

	raw, err := getSimpleText(a.reader, "Enter your 10-digit mobile number", a.out)
	if err != nil {
		return err
	}
	mobile := models.NormalizeMobile(raw)

	if err := a.sessions.RequestChallenge(ctx, mobile); err != nil {
		a.notify.Error(err)
		return err
	}
	a.notify.Success("OTP sent to %s. Please check your mobile.", mobile)

	return a.EnterOTP(ctx)
}

// EnterOTP submits an OTP for the pending challenge. On failure the
// challenge stays open, so the user can retry, resend or change the number.
func (a *App) EnterOTP(ctx context.Context) error {
	if a.sessions.State() != models.StateChallengeSent {
		a.notify.Warn("No OTP is pending. Use 'login' first.")
		return nil
	}

	raw, err := getSecret(a.reader, "Enter the 6-digit OTP", a.out)
	if err != nil {
		return err
	}

	session, err := a.sessions.SubmitResponse(ctx, models.NormalizeOTP(raw))
	if err != nil {
		a.notify.Error(err)
		a.notify.Info("Type 'otp' to try again, 'resend' for a new code or 'change' to use another number.")
		return err
	}
	a.notify.Success("Login successful. Welcome, %s!", session.UserID)
	return nil
}

// Resend asks the server for a new OTP for the pending number.
func (a *App) Resend(ctx context.Context) error {
	mobile := a.sessions.PendingMobile()
	if a.sessions.State() != models.StateChallengeSent || mobile == "" {
		a.notify.Warn("No OTP is pending. Use 'login' first.")
		return nil
	}
	if err := a.sessions.RequestChallenge(ctx, mobile); err != nil {
		a.notify.Error(err)
		return err
	}
	a.notify.Success("OTP re-sent to %s.", mobile)
	return nil
}

// ChangeNumber drops the pending challenge and starts a new login.
func (a *App) ChangeNumber(ctx context.Context) error {
	if a.sessions.State() != models.StateChallengeSent {
		a.notify.Warn("No OTP is pending. Use 'login' first.")
		return nil
	}
	a.sessions.Reset()
	return a.Login(ctx)
}

// Logout ends the session and forgets everything tied to it: the last
// search results and a kept upload form.
func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.Logout(ctx)
	a.results.Clear()
	a.candidate = nil
	if err != nil {
		a.notify.Error(err)
		return err
	}
	a.notify.Success("Logged out.")
	return nil
}

// Status prints the authentication state and the client settings in use.
func (a *App) Status(ctx context.Context) error {
	fmt.Fprintf(a.out, "State:    %s\n", a.sessions.State())
	switch a.sessions.State() {
	case models.StateAuthenticated:
		fmt.Fprintf(a.out, "User:     %s\n", a.sessions.Session().UserID)
	case models.StateChallengeSent:
		fmt.Fprintf(a.out, "Mobile:   %s\n", a.sessions.PendingMobile())
	}
	fmt.Fprintf(a.out, "Server:   %s\n", a.config.ServerURL)
	fmt.Fprintf(a.out, "Results:  %d\n", len(a.results.List()))
	if a.candidate != nil && a.candidate.File != nil {
		fmt.Fprintf(a.out, "Pending upload: %s\n", a.candidate.File.Name)
	}
	return nil
}
