// Package session owns the in-memory mirror of the current credential,
// identity and cart badge count, and keeps dependent views informed of
// changes. All mutation goes through the Controller's operations.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/earthen/shopctl/credentials"
	"github.com/earthen/shopctl/gateway"
	"github.com/earthen/shopctl/identity"
)

// State is the authentication state of the running client.
type State int

const (
	// StateAnonymous means no credential is held.
	StateAnonymous State = iota
	// StateAuthenticated means a structurally valid credential and its
	// decoded identity are held.
	StateAuthenticated
)

func (s State) String() string {
	if s == StateAuthenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Snapshot is an immutable view of the session handed to listeners.
type Snapshot struct {
	State     State
	Identity  *identity.Identity
	CartCount int
}

// API is the slice of the gateway the controller depends on.
type API interface {
	Login(ctx context.Context, username, password string) (*credentials.Credential, error)
	GetCart(ctx context.Context) (*gateway.Cart, error)
}

// Listener receives a snapshot after every session change.
type Listener func(Snapshot)

// Controller is the single authority for {credential, identity, cart
// count} during the client's lifetime. One instance exists per running
// client.
type Controller struct {
	store credentials.Store
	api   API

	lock      sync.RWMutex
	cred      *credentials.Credential
	ident     *identity.Identity
	cartCount int
	listeners map[int]Listener
	nextID    int
}

// NewController restores the session from the store synchronously. A
// missing slot yields the anonymous state; a credential that fails to
// decode is treated as no session and the slot is cleared, never
// surfaced as an error. The cart count starts at zero until the first
// refresh.
func NewController(store credentials.Store, api API) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] credential store is required")
	}
	if api == nil {
		return nil, errors.New("[NewController] gateway is required")
	}

	c := &Controller{
		store:     store,
		api:       api,
		listeners: make(map[int]Listener),
	}

	cred, err := store.Load()
	if err != nil || cred.Empty() {
		return c, nil
	}

	ident, err := identity.Decode(cred)
	if err != nil {
		log.Debug().Err(err).Msg("stored credential failed to decode, clearing slot")
		if clearErr := store.Clear(); clearErr != nil {
			log.Warn().Err(clearErr).Msg("failed to clear corrupt credential slot")
		}
		return c, nil
	}

	c.cred = cred
	c.ident = ident
	return c, nil
}

// Login authenticates against the remote API and, on success, persists
// the credential, installs the decoded identity and refreshes the cart
// count. On any failure the prior state is left fully intact: nothing
// is persisted and no transition happens.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	cred, err := c.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	ident, err := identity.Decode(cred)
	if err != nil {
		return err
	}

	if err := c.store.Save(cred); err != nil {
		return err
	}

	c.lock.Lock()
	c.cred = cred
	c.ident = ident
	c.cartCount = 0
	c.lock.Unlock()
	c.notify()

	c.RefreshCartSummary(ctx)
	return nil
}

// Logout clears the store and resets the session to anonymous. It
// always succeeds and touches no network; a storage failure on clear is
// logged and the in-memory teardown proceeds regardless.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear credential slot on logout")
	}

	c.lock.Lock()
	c.cred = nil
	c.ident = nil
	c.cartCount = 0
	c.lock.Unlock()
	c.notify()
}

// RefreshCartSummary re-fetches the cart and sets the badge count to
// the number of distinct line items found. It is a no-op while
// anonymous and never issues a network call in that state. A fetch
// failure or an absent cart resolves to zero rather than an error — the
// badge fails open to empty, never to a stale nonzero value.
//
// Views mutating cart items are expected to call this afterwards; the
// controller does not observe those mutations itself.
func (c *Controller) RefreshCartSummary(ctx context.Context) int {
	if c.State() == StateAnonymous {
		return 0
	}

	count := 0
	cart, err := c.api.GetCart(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("cart fetch failed, badge resets to zero")
	} else if cart != nil {
		count = len(cart.Items)
	}

	c.lock.Lock()
	changed := c.cartCount != count
	c.cartCount = count
	c.lock.Unlock()

	if changed {
		c.notify()
	}
	return count
}

// State returns the current authentication state.
func (c *Controller) State() State {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.cred.Empty() {
		return StateAnonymous
	}
	return StateAuthenticated
}

// Identity returns a copy of the current identity, or nil while
// anonymous.
func (c *Controller) Identity() *identity.Identity {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.ident == nil {
		return nil
	}
	ident := *c.ident
	return &ident
}

// CartCount returns the current badge count.
func (c *Controller) CartCount() int {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.cartCount
}

// Snapshot returns the current session as a single consistent view.
func (c *Controller) Snapshot() Snapshot {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.snapshotLocked()
}

// Subscribe registers a listener invoked after every session change.
// The returned function removes the registration.
func (c *Controller) Subscribe(listener Listener) func() {
	c.lock.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	c.lock.Unlock()

	return func() {
		c.lock.Lock()
		delete(c.listeners, id)
		c.lock.Unlock()
	}
}

func (c *Controller) notify() {
	c.lock.RLock()
	snapshot := c.snapshotLocked()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.lock.RUnlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (c *Controller) snapshotLocked() Snapshot {
	var ident *identity.Identity
	if c.ident != nil {
		cp := *c.ident
		ident = &cp
	}
	return Snapshot{
		State:     c.stateLocked(),
		Identity:  ident,
		CartCount: c.cartCount,
	}
}

func (c *Controller) stateLocked() State {
	if c.cred.Empty() {
		return StateAnonymous
	}
	return StateAuthenticated
}
