package session

import (
	"context"
	"sync"

	"github.com/basket-cli/basket/internal/model"
)

// FakeAPI is a test-only fake implementing API. Fields inject the result of
// each operation; counters record how often it was hit.
type FakeAPI struct {
	mu sync.Mutex

	LoginResult *model.LoginResult
	LoginErr    error
	MeUser      *model.User
	MeErr       error
	RegisterErr error

	LoginCalls    int
	MeCalls       int
	RegisterCalls int
}

func (f *FakeAPI) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginResult, nil
}

func (f *FakeAPI) Register(ctx context.Context, name, username, password string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &model.User{Name: name, Username: username}, nil
}

func (f *FakeAPI) Me(ctx context.Context, token string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MeCalls++
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeUser, nil
}

// FakeTokenStore is a test-only in-memory durable slot.
type FakeTokenStore struct {
	mu      sync.Mutex
	Token   string
	LoadErr error
	SaveErr error

	Saves  int
	Clears int
}

func (f *FakeTokenStore) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return "", f.LoadErr
	}
	return f.Token, nil
}

func (f *FakeTokenStore) Save(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Token = token
	f.Saves++
	return nil
}

func (f *FakeTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = ""
	f.Clears++
	return nil
}
