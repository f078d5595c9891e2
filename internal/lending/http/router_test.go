package http_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	lendhttp "github.com/aussiebroadwan/hwlend/internal/lending/http"
	"github.com/aussiebroadwan/hwlend/pkg/httpx"
	"github.com/aussiebroadwan/hwlend/pkg/lendsdk"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestSystemEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := t.Context()

	live, err := srv.Client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.Client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)

	jwks, err := srv.Client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "test-key", jwks.Keys[0].Kid)
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/v1/hardware")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")

	var env httpx.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.False(t, env.Success)
	require.Equal(t, lendsdk.CodeUnauthorized, env.Error)

	bogus := srv.Client.NewSessionFromToken("alice", "not.a.token", time.Time{}, nil)
	_, err = bogus.ListProjects(t.Context())
	requireCode(t, err, lendsdk.CodeUnauthorized)
}

func TestLendingFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := t.Context()

	admin := srv.login(t, adminName, adminPass)
	alice := srv.signup(t, "alice")
	bob := srv.signup(t, "bob")

	t.Run("only admins create hardware", func(t *testing.T) {
		_, err := alice.CreateHardwareSet(ctx, "HWSet1", 10)
		requireCode(t, err, lendsdk.CodeInsufficientScope)

		set, err := admin.CreateHardwareSet(ctx, "HWSet1", 10)
		require.NoError(t, err)
		require.Equal(t, 10, set.Available)

		_, err = admin.CreateHardwareSet(ctx, "HWSet1", 5)
		requireCode(t, err, lendsdk.CodeDuplicateName)
		_, err = admin.CreateHardwareSet(ctx, "HWSet2", 0)
		requireCode(t, err, lendsdk.CodeInvalidCapacity)
	})

	p, err := alice.CreateProject(ctx, lendsdk.CreateProjectRequest{ProjectID: "proj-a", Name: "Project A"})
	require.NoError(t, err)
	require.Equal(t, "alice", p.Owner)
	require.Equal(t, []string{"alice"}, p.Members)

	t.Run("checkout and checkin", func(t *testing.T) {
		mv, err := alice.Checkout(ctx, "proj-a", "HWSet1", 4)
		require.NoError(t, err)
		require.Equal(t, 6, mv.Available)
		require.Equal(t, 4, mv.Holding)

		_, err = alice.Checkout(ctx, "proj-a", "HWSet1", 10)
		requireCode(t, err, lendsdk.CodeInsufficientAvailability)
		_, err = alice.Checkin(ctx, "proj-a", "HWSet1", 5)
		requireCode(t, err, lendsdk.CodeOverReturn)
		_, err = alice.Checkout(ctx, "proj-a", "HWSet1", 0)
		requireCode(t, err, lendsdk.CodeInvalidQuantity)
		_, err = alice.Checkout(ctx, "proj-a", "nope", 1)
		requireCode(t, err, lendsdk.CodeNotFound)

		set, err := bob.GetHardwareSet(ctx, "HWSet1")
		require.NoError(t, err)
		require.Equal(t, 6, set.Available)
	})

	t.Run("members only", func(t *testing.T) {
		_, err := bob.Checkout(ctx, "proj-a", "HWSet1", 1)
		requireCode(t, err, lendsdk.CodeNotAMember)
		_, err = bob.GetProject(ctx, "proj-a")
		requireCode(t, err, lendsdk.CodeNotAMember)
		_, err = bob.GetUsage(ctx, "proj-a", 0)
		requireCode(t, err, lendsdk.CodeNotAMember)

		require.NoError(t, bob.JoinProject(ctx, "proj-a"))
		requireCode(t, bob.JoinProject(ctx, "proj-a"), lendsdk.CodeAlreadyMember)

		got, err := bob.GetProject(ctx, "proj-a")
		require.NoError(t, err)
		require.Equal(t, 4, got.Holdings["HWSet1"])
	})

	t.Run("owner only", func(t *testing.T) {
		name := "Hijacked"
		_, err := bob.UpdateProject(ctx, "proj-a", lendsdk.UpdateProjectRequest{Name: &name})
		requireCode(t, err, lendsdk.CodeNotOwner)
		requireCode(t, bob.DeleteProject(ctx, "proj-a"), lendsdk.CodeNotOwner)
		requireCode(t, alice.LeaveProject(ctx, "proj-a"), lendsdk.CodeOwnerCannotLeave)
	})

	t.Run("change project id", func(t *testing.T) {
		newID := "proj-b"
		got, err := alice.UpdateProject(ctx, "proj-a", lendsdk.UpdateProjectRequest{ProjectID: &newID})
		require.NoError(t, err)
		require.Equal(t, "proj-b", got.ProjectID)

		_, err = alice.GetProject(ctx, "proj-a")
		requireCode(t, err, lendsdk.CodeNotFound)

		records, err := alice.GetUsage(ctx, "proj-b", 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "proj-b", records[0].ProjectID)
		require.Equal(t, "checkout", records[0].Action)
	})

	t.Run("transfer", func(t *testing.T) {
		_, err := admin.CreateHardwareSet(ctx, "HWSet2", 3)
		require.NoError(t, err)

		results, err := bob.Transfer(ctx, "proj-b", []lendsdk.TransferLine{
			{HWSet: "HWSet1", Action: "checkout", Qty: 2},
			{HWSet: "HWSet2", Action: "checkout", Qty: 9},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)
		require.True(t, results[0].Success)
		require.Equal(t, 6, results[0].Movement.Holding)
		require.False(t, results[1].Success)
		require.Equal(t, lendsdk.CodeInsufficientAvailability, results[1].Error)
	})

	t.Run("inventory overview is admin only", func(t *testing.T) {
		_, err := bob.GetInventory(ctx)
		requireCode(t, err, lendsdk.CodeInsufficientScope)

		inventory, err := admin.GetInventory(ctx)
		require.NoError(t, err)
		require.Len(t, inventory, 2)
		require.Equal(t, "HWSet1", inventory[0].Name)
		require.Equal(t, 4, inventory[0].Available)
		require.Equal(t, 6, inventory[0].CheckedOut)
		require.Equal(t, map[string]int{"proj-b": 6}, inventory[0].Holdings)
		require.Equal(t, 3, inventory[1].Available)
		require.Empty(t, inventory[1].Holdings)
	})

	t.Run("delete returns holdings", func(t *testing.T) {
		require.NoError(t, alice.DeleteProject(ctx, "proj-b"))

		set, err := alice.GetHardwareSet(ctx, "HWSet1")
		require.NoError(t, err)
		require.Equal(t, 10, set.Available)

		projects, err := bob.ListProjects(ctx)
		require.NoError(t, err)
		require.Empty(t, projects)
	})

	hardware, err := bob.ListHardware(ctx)
	require.NoError(t, err)
	require.Len(t, hardware, 2)
	require.Equal(t, "HWSet1", hardware[0].Name)
}

func TestQuantityMustBeInteger(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := t.Context()

	admin := srv.login(t, adminName, adminPass)
	alice := srv.signup(t, "alice")
	_, err := admin.CreateHardwareSet(ctx, "HWSet1", 10)
	require.NoError(t, err)
	_, err = alice.CreateProject(ctx, lendsdk.CreateProjectRequest{ProjectID: "proj-a", Name: "Project A"})
	require.NoError(t, err)

	for _, qty := range []string{`"abc"`, `2.5`, `"4"`, `true`} {
		for _, action := range []string{"checkout", "checkin"} {
			var env httpx.Envelope
			status := srv.postRaw(t, alice, "/v1/projects/proj-a/"+action, `{"hw_set":"HWSet1","qty":`+qty+`}`, &env)
			require.Equal(t, http.StatusBadRequest, status, "qty %s", qty)
			require.Equal(t, lendsdk.CodeInvalidQuantity, env.Error, "qty %s", qty)
		}
	}

	var env httpx.Envelope
	status := srv.postRaw(t, alice, "/v1/projects/proj-a/checkout", `{"hw_set":"HWSet1","qty":`, &env)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, lendsdk.CodeInvalidRequest, env.Error)

	var transfer lendsdk.TransferResponse
	status = srv.postRaw(t, alice, "/v1/projects/proj-a/transfers", `{"lines":[
		{"hw_set":"HWSet1","action":"checkout","qty":"abc"},
		{"hw_set":"HWSet1","action":"checkout","qty":2.5},
		{"hw_set":"HWSet1","action":"checkout","qty":3}
	]}`, &transfer)
	require.Equal(t, http.StatusOK, status)
	require.False(t, transfer.Success)
	require.Len(t, transfer.Results, 3)
	require.Equal(t, lendsdk.CodeInvalidQuantity, transfer.Results[0].Error)
	require.Equal(t, lendsdk.CodeInvalidQuantity, transfer.Results[1].Error)
	require.True(t, transfer.Results[2].Success)
	require.Equal(t, 7, transfer.Results[2].Movement.Available)
}

func TestInviteAndUsageLimit(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := t.Context()

	admin := srv.login(t, adminName, adminPass)
	alice := srv.signup(t, "alice")
	carol := srv.signup(t, "carol")

	_, err := admin.CreateHardwareSet(ctx, "HWSet1", 10)
	require.NoError(t, err)
	_, err = alice.CreateProject(ctx, lendsdk.CreateProjectRequest{ProjectID: "proj-a", Name: "A"})
	require.NoError(t, err)

	requireCode(t, alice.InviteUser(ctx, "proj-a", "ghost"), lendsdk.CodeUserNotFound)
	require.NoError(t, alice.InviteUser(ctx, "proj-a", "carol"))

	for range 3 {
		_, err := carol.Checkout(ctx, "proj-a", "HWSet1", 1)
		require.NoError(t, err)
	}

	records, err := carol.GetUsage(ctx, "proj-a", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "carol", records[0].Username)

	resp, err := http.Get(srv.URL + "/v1/projects/proj-a/usage?limit=abc")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/projects/proj-a/usage?limit=abc", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+carol.AccessToken())
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAccountLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)
	ctx := t.Context()

	alice := srv.signup(t, "alice")
	require.True(t, alice.HasScope("inventory:write"))
	require.False(t, alice.HasScope("hardware:admin"))

	_, err := srv.Client.Register(ctx, lendsdk.RegisterRequest{Username: "alice", Email: "a@example.com", Password: testPassword})
	requireCode(t, err, lendsdk.CodeDuplicateName)
	_, err = srv.Client.Register(ctx, lendsdk.RegisterRequest{Username: "bob", Email: "b@example.com", Password: "short"})
	requireCode(t, err, lendsdk.CodeInvalidRequest)

	_, err = srv.Client.Login(ctx, "alice", "wrong password", "")
	requireCode(t, err, lendsdk.CodeInvalidCredentials)

	t.Run("change password", func(t *testing.T) {
		requireCode(t, alice.ChangePassword(ctx, "wrong password", "another password"), lendsdk.CodeInvalidCredentials)
		require.NoError(t, alice.ChangePassword(ctx, testPassword, "another password"))
		alice = srv.login(t, "alice", "another password")
	})

	t.Run("mfa", func(t *testing.T) {
		enrollment, err := alice.EnrollTOTP(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, enrollment.Secret)

		requireCode(t, alice.ConfirmTOTP(ctx, "bad"), lendsdk.CodeInvalidTOTPCode)
		code, err := totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)
		require.NoError(t, alice.ConfirmTOTP(ctx, code))

		_, err = srv.Client.Login(ctx, "alice", "another password", "")
		requireCode(t, err, lendsdk.CodeMFARequired)

		code, err = totp.GenerateCode(enrollment.Secret, time.Now())
		require.NoError(t, err)
		_, err = srv.Client.Login(ctx, "alice", "another password", code)
		require.NoError(t, err)

		require.NoError(t, alice.DisableTOTP(ctx, code))
	})

	t.Run("password reset for unknown user is accepted", func(t *testing.T) {
		require.NoError(t, srv.Client.RequestPasswordReset(ctx, "ghost"))
		requireCode(t, srv.Client.ResetPassword(ctx, "bogus-token", "new password 1"), lendsdk.CodeInvalidResetToken)
	})

	t.Run("delete account", func(t *testing.T) {
		_, err := alice.CreateProject(ctx, lendsdk.CreateProjectRequest{ProjectID: "alice-proj", Name: "A"})
		require.NoError(t, err)

		requireCode(t, alice.DeleteAccount(ctx, "wrong password"), lendsdk.CodeInvalidCredentials)
		require.NoError(t, alice.DeleteAccount(ctx, "another password"))

		_, err = alice.ListProjects(ctx)
		require.ErrorIs(t, err, lendsdk.ErrSessionExpired)

		_, err = srv.Client.Login(ctx, "alice", "another password", "")
		requireCode(t, err, lendsdk.CodeInvalidCredentials)
	})
}

func TestLoginRateLimited(t *testing.T) {
	strict := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	srv := newTestServer(t, &lendhttp.Limits{Strict: strict, Moderate: generous, Lenient: generous, Public: generous})

	for range 2 {
		_, err := srv.Client.Login(t.Context(), "alice", "wrong password", "")
		requireCode(t, err, lendsdk.CodeInvalidCredentials)
	}
	_, err := srv.Client.Login(t.Context(), "alice", "wrong password", "")
	requireCode(t, err, lendsdk.CodeRateLimitExceeded)
}
