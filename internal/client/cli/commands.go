package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/cryptox"
	"github.com/dmitrijs2005/progressboard/internal/dashboard"
	"github.com/dmitrijs2005/progressboard/internal/export"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// now is the clock used for export names.
var now = time.Now

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

// loginMessage explains a failed sign-in to the user.
func loginMessage(err error) string {
	var se *common.StatusError
	switch {
	case errors.As(err, &se) && errors.Is(err, common.ErrAuthenticationFailed):
		return fmt.Sprintf("Invalid credentials (Status: %d)", se.Code)
	case errors.Is(err, common.ErrAuthenticationFailed):
		return "Authentication service unavailable"
	case errors.Is(err, common.ErrNoToken):
		return "No authentication token received"
	case errors.Is(err, common.ErrMalformedResponse):
		return "Invalid server response format"
	}
	return err.Error()
}

// Login prompts for credentials and signs in. The password is wiped once
// it has been sent.
func (a *App) Login(ctx context.Context) error {
	if _, redirect := dashboard.Resolve(dashboard.Entry, a.isLoggedIn(ctx)); redirect {
		fmt.Fprintln(a.out, "Already logged in. Use 'logout' first.")
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter username or email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(password)

	if userName == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Please enter username and password")
		return nil
	}

	if _, err := a.auth.Login(ctx, userName, string(password)); err != nil {
		a.logger.Debug(ctx, "login failed", "error", err)
		fmt.Fprintln(a.out, "Login unsuccessful:", loginMessage(err))
		return nil
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout removes the stored token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// load runs the dashboard load behind the navigation guard. A rejected
// session is cleared.
func (a *App) load(ctx context.Context) (*dashboard.Dashboard, error) {
	if _, redirect := dashboard.Resolve(dashboard.Protected, a.isLoggedIn(ctx)); redirect {
		return nil, errNotLoggedIn
	}

	d, err := a.dash.Load(ctx)
	if err != nil {
		if common.IsAuthError(err) {
			if cerr := a.store.Clear(ctx); cerr != nil {
				a.logger.Warn(ctx, "clearing rejected session failed", "error", cerr)
			}
			a.userName = ""
			return nil, fmt.Errorf("session expired, please log in again: %w", err)
		}
		return nil, err
	}
	return d, nil
}

func (a *App) Profile(ctx context.Context) error {
	d, err := a.load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, profileCard(d.Profile))
	return nil
}

func (a *App) XP(ctx context.Context) error {
	d, err := a.load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, xpCard(d.XP))
	return nil
}

func (a *App) Progress(ctx context.Context) error {
	d, err := a.load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, progressCard(d.Progress))
	return nil
}

// Export writes the rendered charts to the configured sink.
func (a *App) Export(ctx context.Context) error {
	d, err := a.load(ctx)
	if err != nil {
		return err
	}

	sink, err := a.newSink(ctx)
	if err != nil {
		return err
	}

	locations, err := export.Charts(ctx, sink, d, now())
	if errors.Is(err, common.ErrDataUnavailable) {
		fmt.Fprintln(a.out, "No charts to export")
		return nil
	}
	if err != nil {
		return err
	}
	for _, l := range locations {
		fmt.Fprintln(a.out, "Exported", l)
	}
	return nil
}
