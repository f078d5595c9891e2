package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/hwlend/internal/lending/domain"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, u domain.User, token string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = map[string]string{}
	}
	n.tokens[u.Username] = token
	return nil
}

func (n *recordingNotifier) token(username string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens[username]
}

func TestRegister(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()

	u, err := f.accounts.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, u.Role)
	require.NotContains(t, u.PasswordHash, "correct horse")

	_, err = f.accounts.Register(ctx, "alice", "other@example.com", "correct horse")
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = f.accounts.Register(ctx, "bob", "bob@example.com", "short")
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.accounts.Register(ctx, "", "x@example.com", "long enough")
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")

	u, err := f.accounts.Authenticate(ctx, "alice", "password-alice", "")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = f.accounts.Authenticate(ctx, "alice", "wrong password", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.accounts.Authenticate(ctx, "ghost", "password-ghost", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateWithMFA(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	mfa := &MFAService{Store: f.st, Issuer: "hwlend"}

	enrollment, err := mfa.Enroll(ctx, "alice")
	require.NoError(t, err)
	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, mfa.Confirm(ctx, "alice", code))

	_, err = f.accounts.Authenticate(ctx, "alice", "password-alice", "")
	require.ErrorIs(t, err, ErrMFARequired)

	_, err = f.accounts.Authenticate(ctx, "alice", "password-alice", "000000x")
	require.ErrorIs(t, err, ErrInvalidTOTPCode)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, "alice", "password-alice", code)
	require.NoError(t, err)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")

	require.ErrorIs(t, f.accounts.ChangePassword(ctx, "alice", "wrong password", "new password"), ErrInvalidCredentials)
	require.ErrorIs(t, f.accounts.ChangePassword(ctx, "alice", "password-alice", "short"), ErrInvalidRequest)
	require.NoError(t, f.accounts.ChangePassword(ctx, "alice", "password-alice", "new password"))

	_, err := f.accounts.Authenticate(ctx, "alice", "new password", "")
	require.NoError(t, err)
	_, err = f.accounts.Authenticate(ctx, "alice", "password-alice", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	notifier := &recordingNotifier{}
	f.accounts.Notifier = notifier
	f.user(t, "alice")

	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "ghost"))
	require.Empty(t, notifier.token("ghost"))

	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "alice"))
	token := notifier.token("alice")
	require.NotEmpty(t, token)

	u, err := f.accounts.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, token, u.ResetTokenHash)

	require.ErrorIs(t, f.accounts.ResetPassword(ctx, "not-a-token", "brand new pw"), ErrInvalidResetToken)
	require.NoError(t, f.accounts.ResetPassword(ctx, token, "brand new pw"))
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, token, "another new pw"), ErrInvalidResetToken)

	_, err = f.accounts.Authenticate(ctx, "alice", "brand new pw", "")
	require.NoError(t, err)
}

func TestPasswordResetTokenIsSingleUseUnderConcurrency(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	notifier := &recordingNotifier{}
	f.accounts.Notifier = notifier
	f.user(t, "alice")

	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "alice"))
	token := notifier.token("alice")

	passwords := []string{"first new pw", "second new pw", "third new pw", "fourth new pw"}
	errs := make([]error, len(passwords))
	var wg sync.WaitGroup
	for i, pw := range passwords {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = f.accounts.ResetPassword(ctx, token, pw)
		}()
	}
	wg.Wait()

	winner := ""
	for i, err := range errs {
		if err == nil {
			require.Empty(t, winner, "token consumed twice")
			winner = passwords[i]
			continue
		}
		require.ErrorIs(t, err, ErrInvalidResetToken)
	}
	require.NotEmpty(t, winner)

	_, err := f.accounts.Authenticate(ctx, "alice", winner, "")
	require.NoError(t, err)

	// A token replaced by a newer request no longer works.
	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "alice"))
	stale := notifier.token("alice")
	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "alice"))
	require.ErrorIs(t, f.accounts.ResetPassword(ctx, stale, "stale new pw"), ErrInvalidResetToken)
	require.NoError(t, f.accounts.ResetPassword(ctx, notifier.token("alice"), "fresh new pw"))
}

func TestPasswordResetTokenExpires(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	notifier := &recordingNotifier{}
	f.accounts.Notifier = notifier
	f.accounts.ResetTokenTTL = time.Millisecond
	f.user(t, "alice")

	require.NoError(t, f.accounts.RequestPasswordReset(ctx, "alice"))
	time.Sleep(5 * time.Millisecond)

	require.ErrorIs(t, f.accounts.ResetPassword(ctx, notifier.token("alice"), "brand new pw"), ErrInvalidResetToken)
}

func TestDeleteAccountCascades(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := t.Context()
	f.user(t, "alice")
	f.user(t, "bob")
	f.set(t, "HWSet1", 10)
	owned := f.project(t, "alice-proj", "alice")
	f.project(t, "bob-proj", "bob")
	require.NoError(t, f.projects.JoinProject(ctx, "bob-proj", "alice"))

	_, err := f.inventory.Checkout(ctx, "alice-proj", "HWSet1", 4, "alice")
	require.NoError(t, err)
	_, err = f.inventory.Checkout(ctx, "bob-proj", "HWSet1", 2, "alice")
	require.NoError(t, err)

	require.ErrorIs(t, f.accounts.DeleteAccount(ctx, "alice", "wrong password"), ErrInvalidCredentials)
	require.ErrorIs(t, f.accounts.DeleteAccount(ctx, "ghost", "whatever"), ErrUserNotFound)

	require.NoError(t, f.accounts.DeleteAccount(ctx, "alice", "password-alice"))

	_, err = f.accounts.GetUser(ctx, "alice")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.projects.GetProjectDetails(ctx, "alice-proj")
	require.ErrorIs(t, err, ErrNotFound)

	p, err := f.projects.GetProjectDetails(ctx, "bob-proj")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, p.Members)
	require.Equal(t, 2, p.Holding("HWSet1"))

	require.Equal(t, 8, f.available(t, "HWSet1"))

	// History of the deleted project and alice's entries elsewhere remain
	records, err := f.st.Usage().ListUsage(ctx, owned.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	actions := []domain.UsageAction{records[0].Action, records[1].Action}
	require.ElementsMatch(t, []domain.UsageAction{domain.ActionCheckout, domain.ActionReturn}, actions)
	require.Equal(t, "alice-proj", records[0].ProjectID)

	history, err := f.usage.GetUsageHistory(ctx, "bob-proj", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "alice", history[0].Username)
}
