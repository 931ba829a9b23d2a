// Package host describes the mini-app container the game runs in: the
// readiness handshake, the player identity it hands over and the haptic
// feedback it may offer.
package host

// User is the player record supplied by the container. It is used only for
// attribution.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

// Container is the host handshake.
type Container interface {
	// Ready signals the game is initialised.
	Ready()
	// Expand asks the host for the full viewport.
	Expand()
	// InitData is the opaque token forwarded with results.
	InitData() string
	// User returns the current player, if the host knows one.
	User() (User, bool)
}

// Static is a Container whose identity is fixed at construction, used when
// the game runs outside a chat client.
type Static struct {
	Token  string
	Player *User

	ready    bool
	expanded bool
}

func (s *Static) Ready()  { s.ready = true }
func (s *Static) Expand() { s.expanded = true }

func (s *Static) InitData() string { return s.Token }

func (s *Static) User() (User, bool) {
	if s.Player == nil || s.Player.ID == 0 {
		return User{}, false
	}
	return *s.Player, true
}

// Initialized reports whether both handshake calls were made.
func (s *Static) Initialized() bool { return s.ready && s.expanded }
