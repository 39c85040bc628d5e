package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/earthen/shopctl/credentials"
	"github.com/earthen/shopctl/credentials/filestore"
	"github.com/earthen/shopctl/credentials/storefake"
	"github.com/earthen/shopctl/gateway"
	"github.com/earthen/shopctl/session"
)

// fakeAPI implements session.API with scripted responses and call counts.
type fakeAPI struct {
	lock sync.Mutex

	loginCred *credentials.Credential
	loginErr  error
	cart      *gateway.Cart
	cartErr   error

	loginCalls int
	cartCalls  int
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*credentials.Credential, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginCred, nil
}

func (f *fakeAPI) GetCart(ctx context.Context) (*gateway.Cart, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.cartCalls++
	if f.cartErr != nil {
		return nil, f.cartErr
	}
	return f.cart, nil
}

func mintAccessToken(t *testing.T, userID int64, username string) string {
	t.Helper()

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"user_id":  userID,
		"username": username,
		"email":    username + "@example.com",
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func twoItemCart(t *testing.T) *gateway.Cart {
	t.Helper()
	return &gateway.Cart{
		ID: 1,
		Items: []gateway.CartItem{
			{ID: 1, Product: gateway.Product{ID: 1, Name: "Pot", Price: "10000.00"}, Quantity: 2},
			{ID: 2, Product: gateway.Product{ID: 2, Name: "Soil", Price: "5000.00"}, Quantity: 1},
		},
	}
}

func TestStartupMissingSlotIsAnonymous(t *testing.T) {
	ctrl, err := session.NewController(storefake.NewFakeCredentialStore(), &fakeAPI{})
	require.NoError(t, err)
	require.Equal(t, session.StateAnonymous, ctrl.State())
	require.Nil(t, ctrl.Identity())
	require.Zero(t, ctrl.CartCount())
}

func TestStartupRestoresStoredSession(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	require.NoError(t, store.Save(&credentials.Credential{Access: mintAccessToken(t, 42, "alice")}))

	ctrl, err := session.NewController(store, &fakeAPI{})
	require.NoError(t, err)
	require.Equal(t, session.StateAuthenticated, ctrl.State())
	require.Equal(t, "alice", ctrl.Identity().Username)
	require.Equal(t, int64(42), ctrl.Identity().UserID)
	// Cart count starts at zero until the first refresh.
	require.Zero(t, ctrl.CartCount())
}

func TestStartupUnparseableSlotFileIsRemoved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt json"), 0o600))

	ctrl, err := session.NewController(filestore.New(path), &fakeAPI{})
	require.NoError(t, err)
	require.Equal(t, session.StateAnonymous, ctrl.State())

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "corrupt slot should not survive startup")
}

func TestStartupCorruptCredentialClearsSlotAndStaysAnonymous(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	require.NoError(t, store.Save(&credentials.Credential{Access: "not-a-jwt"}))

	ctrl, err := session.NewController(store, &fakeAPI{})
	require.NoError(t, err)
	require.Equal(t, session.StateAnonymous, ctrl.State())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestControllerRequiresDependencies(t *testing.T) {
	_, err := session.NewController(nil, &fakeAPI{})
	require.Error(t, err)

	_, err = session.NewController(storefake.NewFakeCredentialStore(), nil)
	require.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	access := mintAccessToken(t, 42, "alice")
	api := &fakeAPI{
		loginCred: &credentials.Credential{Access: access, Refresh: "ref"},
		cart:      twoItemCart(t),
	}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))

	require.Equal(t, session.StateAuthenticated, ctrl.State())
	require.Equal(t, "alice", ctrl.Identity().Username)
	// Distinct line items, not total quantity.
	require.Equal(t, 2, ctrl.CartCount())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, access, stored.Access)
}

func TestLoginFailureLeavesStateUntouched(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{loginErr: errors.New("401")}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	require.Error(t, ctrl.Login(context.Background(), "alice", "wrong"))
	require.Equal(t, session.StateAnonymous, ctrl.State())
	require.Zero(t, ctrl.CartCount())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, stored)
	require.Zero(t, api.cartCalls)
}

func TestLoginMalformedCredentialLeavesStateUntouched(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{loginCred: &credentials.Credential{Access: "not-a-jwt"}}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	require.Error(t, ctrl.Login(context.Background(), "alice", "secret"))
	require.Equal(t, session.StateAnonymous, ctrl.State())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestLoginSucceedsWhenCartFetchFails(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{
		loginCred: &credentials.Credential{Access: mintAccessToken(t, 1, "alice")},
		cartErr:   errors.New("503"),
	}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	require.Equal(t, session.StateAuthenticated, ctrl.State())
	require.Zero(t, ctrl.CartCount())
}

func TestLogoutTearsDownSession(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{
		loginCred: &credentials.Credential{Access: mintAccessToken(t, 1, "alice")},
		cart:      twoItemCart(t),
	}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	require.Equal(t, 2, ctrl.CartCount())

	ctrl.Logout()
	require.Equal(t, session.StateAnonymous, ctrl.State())
	require.Nil(t, ctrl.Identity())
	require.Zero(t, ctrl.CartCount())

	stored, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, stored)
}

func TestRefreshAnonymousIssuesNoNetworkCall(t *testing.T) {
	api := &fakeAPI{cart: twoItemCart(t)}
	ctrl, err := session.NewController(storefake.NewFakeCredentialStore(), api)
	require.NoError(t, err)

	count := ctrl.RefreshCartSummary(context.Background())
	require.Zero(t, count)
	require.Zero(t, ctrl.CartCount())
	require.Zero(t, api.cartCalls)
}

func TestRefreshAbsentCartResolvesToZero(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	require.NoError(t, store.Save(&credentials.Credential{Access: mintAccessToken(t, 1, "alice")}))

	api := &fakeAPI{} // GetCart returns nil cart, no error
	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	count := ctrl.RefreshCartSummary(context.Background())
	require.Zero(t, count)
	require.Equal(t, 1, api.cartCalls)
}

func TestRefreshFailureFailsOpenToZero(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	require.NoError(t, store.Save(&credentials.Credential{Access: mintAccessToken(t, 1, "alice")}))

	api := &fakeAPI{cart: twoItemCart(t)}
	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	require.Equal(t, 2, ctrl.RefreshCartSummary(context.Background()))

	// A later failed fetch resets the badge rather than leaving the
	// stale nonzero value.
	api.lock.Lock()
	api.cartErr = errors.New("503")
	api.lock.Unlock()

	require.Zero(t, ctrl.RefreshCartSummary(context.Background()))
	require.Zero(t, ctrl.CartCount())
}

func TestSubscribersNotifiedOnChanges(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{
		loginCred: &credentials.Credential{Access: mintAccessToken(t, 1, "alice")},
		cart:      twoItemCart(t),
	}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)

	var snapshots []session.Snapshot
	unsubscribe := ctrl.Subscribe(func(s session.Snapshot) {
		snapshots = append(snapshots, s)
	})

	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	// One notification for the transition, one for the badge refresh.
	require.Len(t, snapshots, 2)
	require.Equal(t, session.StateAuthenticated, snapshots[0].State)
	require.Zero(t, snapshots[0].CartCount)
	require.Equal(t, 2, snapshots[1].CartCount)

	ctrl.Logout()
	require.Len(t, snapshots, 3)
	require.Equal(t, session.StateAnonymous, snapshots[2].State)
	require.Zero(t, snapshots[2].CartCount)

	unsubscribe()
	require.NoError(t, ctrl.Login(context.Background(), "alice", "secret"))
	require.Len(t, snapshots, 3)
}

func TestSnapshotIsConsistent(t *testing.T) {
	store := storefake.NewFakeCredentialStore()
	api := &fakeAPI{
		loginCred: &credentials.Credential{Access: mintAccessToken(t, 7, "bob")},
		cart:      twoItemCart(t),
	}

	ctrl, err := session.NewController(store, api)
	require.NoError(t, err)
	require.NoError(t, ctrl.Login(context.Background(), "bob", "secret"))

	snapshot := ctrl.Snapshot()
	require.Equal(t, session.StateAuthenticated, snapshot.State)
	require.Equal(t, "bob", snapshot.Identity.Username)
	require.Equal(t, 2, snapshot.CartCount)
}
