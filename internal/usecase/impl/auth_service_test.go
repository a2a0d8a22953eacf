package impl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"dashcam/internal/domain/entity"
	domainerrors "dashcam/internal/domain/errors"
	"dashcam/internal/domain/repository"
	"dashcam/internal/infra/api"
	"dashcam/internal/infra/auth"
	mockService "dashcam/internal/mocks/service"
	"dashcam/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service       usecase.AuthUsecase
	api           *mockService.MockBackendAPI
	authenticator *mockService.MockProviderAuthenticator
	prefs         repository.PreferenceRepository
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	backend := mockService.NewMockBackendAPI(t)
	authenticator := mockService.NewMockProviderAuthenticator(t)
	prefs := newTestPrefs(t)

	service := NewAuthService(AuthServiceParams{
		API:           backend,
		Prefs:         prefs,
		Authenticator: authenticator,
		Inspector:     auth.NewTokenInspector(),
		Logger:        newDiscardLogger(),
	})

	return authServiceFixtures{
		service:       service,
		api:           backend,
		authenticator: authenticator,
		prefs:         prefs,
	}
}

func TestAuthService_ExchangeProviderToken_PersistsSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.api.EXPECT().
		ExchangeProviderToken(mock.Anything, entity.ProviderTypeKakao, "kakao-access").
		Return("session-abc", nil)

	session, err := fx.service.ExchangeProviderToken(ctx, entity.ProviderTypeKakao, "kakao-access")
	require.NoError(t, err)
	assert.Equal(t, "session-abc", session.Token)

	token, err := fx.prefs.SessionToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session-abc", token)

	providerToken, err := fx.prefs.ProviderToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kakao-access", providerToken)

	provider, err := fx.prefs.SessionProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderTypeKakao, provider)
}

func TestAuthService_ExchangeProviderToken_FailureKeepsPriorSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	signIn(t, fx.prefs, "old-session")
	require.NoError(t, fx.prefs.SetProviderToken(ctx, "old-provider"))

	fx.api.EXPECT().
		ExchangeProviderToken(mock.Anything, entity.ProviderTypeKakao, "new-access").
		Return("", domainerrors.NewHTTPStatusError("POST /oauth/kakao/callback", http.StatusBadRequest, "", "bad token"))

	session, err := fx.service.ExchangeProviderToken(ctx, entity.ProviderTypeKakao, "new-access")
	assert.Nil(t, session)
	assert.ErrorIs(t, err, domainerrors.ErrHTTPStatus)

	token, err := fx.prefs.SessionToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old-session", token)

	providerToken, err := fx.prefs.ProviderToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "old-provider", providerToken)
}

func TestAuthService_ExchangeProviderToken_RejectsEmptyInput(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.ExchangeProviderToken(context.Background(), entity.ProviderTypeKakao, "  ")
	assert.Error(t, err)

	_, err = fx.service.ExchangeProviderToken(context.Background(), "", "token")
	assert.Error(t, err)

	fx.api.AssertNotCalled(t, "ExchangeProviderToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_LoginWithProvider(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.authenticator.EXPECT().AccessToken(mock.Anything).Return("google-access", nil)
	fx.authenticator.EXPECT().Provider().Return(entity.ProviderTypeGoogle)
	fx.api.EXPECT().
		ExchangeProviderToken(mock.Anything, entity.ProviderTypeGoogle, "google-access").
		Return("session-g", nil)

	session, err := fx.service.LoginWithProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderTypeGoogle, session.Provider)
	assert.Equal(t, "google-access", session.ProviderToken)
}

func TestAuthService_LoginWithProvider_SignInFails(t *testing.T) {
	fx := createTestAuthService(t)

	fx.authenticator.EXPECT().AccessToken(mock.Anything).Return("", errors.New("user closed the browser"))

	_, err := fx.service.LoginWithProvider(context.Background())
	assert.Error(t, err)
	requireAbsent(t, fx.prefs.SessionToken)
}

func TestAuthService_ExchangeCode_DropsStaleProviderToken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, fx.prefs.SetProviderToken(ctx, "stale"))
	fx.api.EXPECT().
		ExchangeAuthorizationCode(mock.Anything, entity.ProviderTypeKakao, "abc123").
		Return("session-code", nil)

	session, err := fx.service.ExchangeCode(ctx, entity.ProviderTypeKakao, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "session-code", session.Token)

	requireAbsent(t, fx.prefs.ProviderToken)
}

func TestAuthService_Logout_ClearsCredentials(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	signIn(t, fx.prefs, "session")
	require.NoError(t, fx.prefs.SetProviderToken(ctx, "provider"))
	require.NoError(t, fx.prefs.SetSessionProvider(ctx, entity.ProviderTypeKakao))

	require.NoError(t, fx.service.Logout(ctx))

	requireAbsent(t, fx.prefs.SessionToken)
	requireAbsent(t, fx.prefs.ProviderToken)
	_, err := fx.prefs.SessionProvider(ctx)
	assert.ErrorIs(t, err, repository.ErrPreferenceNotFound)

	// logging out twice is harmless
	assert.NoError(t, fx.service.Logout(ctx))
}

func TestAuthService_Logout_RequestsGoOutUnauthenticated(t *testing.T) {
	var (
		mu          sync.Mutex
		authHeaders []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	prefs := newTestPrefs(t)
	client, err := api.NewClientWithBaseURL(server.URL, server.Client(), prefs, newDiscardLogger())
	require.NoError(t, err)
	backend := api.NewBackendAPI(api.BackendParams{Client: client, Logger: newDiscardLogger()})

	service := NewAuthService(AuthServiceParams{
		API:       backend,
		Prefs:     prefs,
		Inspector: auth.NewTokenInspector(),
		Logger:    newDiscardLogger(),
	})

	ctx := context.Background()
	signIn(t, prefs, "session-xyz")

	_, err = backend.ListReports(ctx, 5)
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx))

	_, err = backend.ListReports(ctx, 5)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, authHeaders, 2)
	assert.Equal(t, "Bearer session-xyz", authHeaders[0])
	assert.Empty(t, authHeaders[1])
}

func TestAuthService_Withdraw(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	signIn(t, fx.prefs, "session")
	require.NoError(t, fx.prefs.SetProviderToken(ctx, "kakao-access"))
	require.NoError(t, fx.prefs.SetSessionProvider(ctx, entity.ProviderTypeKakao))
	require.NoError(t, fx.prefs.SetPushTokenMarker(ctx, "fcm"))
	require.NoError(t, fx.prefs.SetNewReportIDs(ctx, []string{"1", "2"}))

	fx.api.EXPECT().DeleteAccount(mock.Anything).Return(nil)
	fx.authenticator.EXPECT().Provider().Return(entity.ProviderTypeKakao)
	fx.authenticator.EXPECT().Unlink(mock.Anything, "kakao-access").Return(errors.New("provider down"))

	require.NoError(t, fx.service.Withdraw(ctx))

	requireAbsent(t, fx.prefs.SessionToken)
	requireAbsent(t, fx.prefs.ProviderToken)
	requireAbsent(t, fx.prefs.PushTokenMarker)

	ids, err := fx.prefs.NewReportIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAuthService_Withdraw_BackendFailureKeepsState(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	signIn(t, fx.prefs, "session")
	fx.api.EXPECT().DeleteAccount(mock.Anything).Return(domainerrors.NewTransportError("DELETE /api/user/delete", errors.New("offline")))

	err := fx.service.Withdraw(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrTransport)

	token, err := fx.prefs.SessionToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "session", token)
	fx.authenticator.AssertNotCalled(t, "Unlink", mock.Anything, mock.Anything)
}

func TestAuthService_RequiresSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	assert.ErrorIs(t, fx.service.Withdraw(ctx), domainerrors.ErrMissingCredential)

	_, err := fx.service.CurrentUser(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredential)
}

func TestAuthService_CurrentUser(t *testing.T) {
	fx := createTestAuthService(t)
	signIn(t, fx.prefs, "session")

	fx.api.EXPECT().CurrentUser(mock.Anything).Return(&entity.User{Name: "Kim", Email: "kim@example.com"}, nil)

	user, err := fx.service.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Kim", user.Name)
}

func TestAuthService_SessionStatus(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	info, err := fx.service.SessionStatus(ctx)
	require.NoError(t, err)
	assert.False(t, info.SignedIn)

	signIn(t, fx.prefs, "opaque-session-token")
	require.NoError(t, fx.prefs.SetSessionProvider(ctx, entity.ProviderTypeNaver))

	info, err = fx.service.SessionStatus(ctx)
	require.NoError(t, err)
	assert.True(t, info.SignedIn)
	assert.True(t, info.Opaque)
	assert.Equal(t, entity.ProviderTypeNaver, info.Provider)
}
