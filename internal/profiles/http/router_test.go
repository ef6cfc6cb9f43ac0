package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/internal/profiles/store/drivers/sqlite"
	"github.com/readspacehq/readspace/pkg/jwtx"
	"github.com/readspacehq/readspace/pkg/profilesdk"
)

const testIssuer = "profiles-test"

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.GenerateSigner("test-key")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := NewMetrics(prometheus.NewRegistry())

	ownership := &service.OwnershipService{Store: st}
	router := NewRouter(signer, signer.Verifier(testIssuer), "test", st, logger, metrics)
	router.TokenService = &service.TokenService{Signer: signer, Store: st, Issuer: testIssuer}
	router.AccountService = &service.AccountService{Store: st}
	router.SignupService = &service.SignupService{Store: st}
	router.ProfileService = &service.ProfileService{Store: st}
	router.DocumentService = &service.DocumentService{Store: st, Ownership: ownership}
	router.BackfillService = &service.BackfillService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func signupAndLogin(t *testing.T, srv *httptest.Server, email string) (*profilesdk.Session, profilesdk.Account) {
	t.Helper()

	client := profilesdk.NewClient(srv.URL)
	ctx := context.Background()

	signup, err := client.Signup(ctx, profilesdk.SignupRequest{
		Email:       email,
		DisplayName: "Alice",
		Password:    "s3cret",
	})
	require.NoError(t, err)
	require.Equal(t, profilesdk.OutcomeAccountCreated, signup.Outcome)

	session, err := client.Login(ctx, email, "s3cret")
	require.NoError(t, err)
	return session, signup.Account
}

func TestSignupLoginMeFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	session, account := signupAndLogin(t, srv, "alice@example.com")
	require.Equal(t, account.ID, session.AccountID())

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", me.Account.Email)
	require.NotNil(t, me.ActiveProfile, "signup bootstrap profile is the default")
	require.Equal(t, "Alice", me.ActiveProfile.Name)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	signupAndLogin(t, srv, "alice@example.com")

	client := profilesdk.NewClient(srv.URL)
	_, err := client.Login(ctx, "alice@example.com", "wrong")
	var apiErr *profilesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeInvalidCredentials, apiErr.Code)

	// Unknown email reads identically.
	_, err = client.Login(ctx, "ghost@example.com", "wrong")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeInvalidCredentials, apiErr.Code)
}

func TestProfileLifecycleOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	session, _ := signupAndLogin(t, srv, "alice@example.com")

	created, err := session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "Work"})
	require.NoError(t, err)
	require.Equal(t, "Work", created.Name)
	require.NotEmpty(t, created.Color)

	_, err = session.CreateProfile(ctx, profilesdk.CreateProfileRequest{Name: "Work"})
	var apiErr *profilesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeNameTaken, apiErr.Code)

	newName := "Deep Work"
	updated, err := session.UpdateProfile(ctx, created.ID, profilesdk.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Deep Work", updated.Name)

	switched, err := session.SwitchProfile(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, switched.LastAccessedAt)

	profiles, err := session.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, created.ID, profiles[0].ID, "switched profile lists first")

	require.NoError(t, session.DeleteProfile(ctx, created.ID))

	profiles, err = session.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	err = session.DeleteProfile(ctx, profiles[0].ID)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeLastProfile, apiErr.Code)
}

func TestDocumentsGatedAcrossAccounts(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()

	alice, _ := signupAndLogin(t, srv, "alice@example.com")
	mallory, _ := signupAndLogin(t, srv, "mallory@example.com")

	aliceProfiles, err := alice.ListProfiles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, aliceProfiles)

	doc, err := alice.CreateDocument(ctx, profilesdk.CreateDocumentRequest{
		ProfileID: aliceProfiles[0].ID,
		Title:     "Alice's notes",
	})
	require.NoError(t, err)
	require.NotNil(t, doc.ProfileID)

	// Mallory cannot read or write through Alice's profile.
	var apiErr *profilesdk.APIError
	_, err = mallory.ListDocuments(ctx, aliceProfiles[0].ID)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeOwnershipDenied, apiErr.Code)

	_, err = mallory.CreateDocument(ctx, profilesdk.CreateDocumentRequest{
		ProfileID: aliceProfiles[0].ID,
		Title:     "planted",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, profilesdk.ErrorCodeOwnershipDenied, apiErr.Code)

	docs, err := alice.ListDocuments(ctx, aliceProfiles[0].ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, doc.ID, docs[0].ID)
}

func TestBackfillRequiresAdmin(t *testing.T) {
	srv, st := newTestServer(t)
	ctx := context.Background()

	session, _ := signupAndLogin(t, srv, "user@example.com")

	_, err := session.RunBackfill(ctx)
	var apiErr *profilesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	// Promote to admin out of band and re-login for a fresh role claim.
	account, err := st.Accounts().GetAccountByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.NoError(t, st.Accounts().SetRole(ctx, account.ID, "admin"))

	client := profilesdk.NewClient(srv.URL)
	admin, err := client.Login(ctx, "user@example.com", "s3cret")
	require.NoError(t, err)

	report, err := admin.RunBackfill(ctx)
	require.NoError(t, err)
	require.True(t, report.DocumentsTightened)
	require.True(t, report.NotifsTightened)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/v1/signup", "", profilesdk.SignupRequest{
		Email:       "evil@example.com",
		DisplayName: "Evil",
		Password:    "s3cret",
		Role:        "admin",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/profiles", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/livez")
	require.NoError(t, err)
	health := decodeBody[profilesdk.HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	ready := decodeBody[profilesdk.HealthResponse](t, resp)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
}
