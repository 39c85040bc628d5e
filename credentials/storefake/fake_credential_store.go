package storefake

import (
	"sync"

	"github.com/earthen/shopctl/credentials"
)

var _ credentials.Store = (*FakeCredentialStore)(nil)

// FakeCredentialStore is an in-memory Store for tests.
type FakeCredentialStore struct {
	cred *credentials.Credential
	lock sync.RWMutex

	// SaveErr and ClearErr, when set, are returned by the corresponding
	// operations to simulate storage failures.
	SaveErr  error
	ClearErr error
}

func NewFakeCredentialStore() *FakeCredentialStore {
	return &FakeCredentialStore{}
}

func (s *FakeCredentialStore) Save(credential *credentials.Credential) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.cred = credential
	return nil
}

func (s *FakeCredentialStore) Load() (*credentials.Credential, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.cred == nil || s.cred.Empty() {
		return nil, nil
	}
	c := *s.cred
	return &c, nil
}

func (s *FakeCredentialStore) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.cred = nil
	return nil
}
