package client

import (
	"context"
	"sync"
)

// AuthState is the session's view of whether a user is signed in.
type AuthState int

const (
	// StateUnknown means the persisted token has not been checked yet.
	StateUnknown AuthState = iota
	// StateAnonymous means no token is held.
	StateAnonymous
	// StateAuthenticating means a login call is in flight. It always
	// resolves to authenticated or anonymous.
	StateAuthenticating
	// StateAuthenticated means a token is held. The server remains the
	// judge of its validity; a rejected request drops back to anonymous.
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// GuardDecision is the outcome of guarding a protected route.
type GuardDecision int

const (
	// DecisionAllow lets the route render.
	DecisionAllow GuardDecision = iota
	// DecisionLoading means a login is still resolving; render a
	// placeholder and guard again when the state settles.
	DecisionLoading
	// DecisionRedirectLogin sends the visitor to the login screen.
	DecisionRedirectLogin
)

// SessionGate tracks the admin session across the client. It decides auth
// state from token presence, guards protected routes with a one-shot
// return path, and forces a local logout whenever the server answers 401.
type SessionGate struct {
	client *Client
	tokens TokenStore

	mu         sync.Mutex
	state      AuthState
	returnPath string
	lastErr    error

	onChange func(AuthState)
}

// NewSessionGate wires a gate to the client. Any non-login 401 observed
// by the client from then on invalidates the session.
func NewSessionGate(c *Client) *SessionGate {
	g := &SessionGate{client: c, tokens: c.Tokens()}
	c.SetOnUnauthorized(g.HandleUnauthorized)
	return g
}

// OnChange registers the callback fired whenever the state changes.
func (g *SessionGate) OnChange(fn func(AuthState)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = fn
}

// State returns the current auth state.
func (g *SessionGate) State() AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Err returns the error recorded by the last failed login. Logout and a
// successful login clear it.
func (g *SessionGate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// CheckAuth reconciles the state with the persisted token store: holding
// a token means authenticated, otherwise anonymous. The store wins over
// whatever memory believed. Calling it again without an intervening
// change is a no-op. An in-flight login is left to resolve on its own.
func (g *SessionGate) CheckAuth() AuthState {
	g.mu.Lock()
	if g.state == StateAuthenticating {
		g.mu.Unlock()
		return StateAuthenticating
	}
	g.mu.Unlock()

	token, err := g.tokens.Load()
	authenticated := err == nil && token != ""

	g.mu.Lock()
	next := StateAnonymous
	if authenticated {
		next = StateAuthenticated
	}
	g.setStateLocked(next)
	g.mu.Unlock()
	return next
}

// Login exchanges credentials for a token and persists it. The state only
// moves to authenticated once the token is stored; a failure resolves to
// anonymous with the error recorded, and is returned so the login view
// can show it.
func (g *SessionGate) Login(ctx context.Context, username, password string) error {
	g.mu.Lock()
	g.setStateLocked(StateAuthenticating)
	g.lastErr = nil
	g.mu.Unlock()

	token, err := g.client.Login(ctx, username, password)
	if err == nil {
		err = g.tokens.Save(token)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err != nil {
		g.lastErr = err
		g.setStateLocked(StateAnonymous)
		return err
	}
	g.setStateLocked(StateAuthenticated)
	return nil
}

// Logout revokes the token server side, then clears it locally. The local
// session ends even when the revoke call fails.
func (g *SessionGate) Logout(ctx context.Context) error {
	err := g.client.Logout(ctx)
	if clearErr := g.tokens.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	g.mu.Lock()
	g.lastErr = nil
	g.setStateLocked(StateAnonymous)
	g.mu.Unlock()
	return err
}

// HandleUnauthorized drops the session after the server rejected the
// token. No revoke call is made; the token is already dead.
func (g *SessionGate) HandleUnauthorized() {
	_ = g.tokens.Clear()
	g.mu.Lock()
	g.setStateLocked(StateAnonymous)
	g.mu.Unlock()
}

// Guard decides whether the route at path may render. An unknown state is
// resolved first; a login still in flight defers the decision. When the
// visitor is sent to login, path is remembered as the return destination
// unless one is already pending.
func (g *SessionGate) Guard(path string) GuardDecision {
	g.mu.Lock()
	unknown := g.state == StateUnknown
	g.mu.Unlock()
	if unknown {
		g.CheckAuth()
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateAuthenticating {
		return DecisionLoading
	}
	if g.state == StateAuthenticated {
		return DecisionAllow
	}
	if g.returnPath == "" {
		g.returnPath = path
	}
	return DecisionRedirectLogin
}

// ConsumeReturnPath returns the pending return destination and clears it,
// so a second read after login lands on the default instead of looping
// back. Defaults to "/".
func (g *SessionGate) ConsumeReturnPath() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	path := g.returnPath
	g.returnPath = ""
	if path == "" {
		path = "/"
	}
	return path
}

func (g *SessionGate) setStateLocked(next AuthState) {
	if g.state == next {
		return
	}
	g.state = next
	if g.onChange != nil {
		fn := g.onChange
		go fn(next)
	}
}
