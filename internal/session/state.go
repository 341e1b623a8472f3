package session

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Profile is the user shown in the navigation bar.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// State is the session record kept in the auth-storage slot.
type State struct {
	User       *Profile `json:"user"`
	IsLoggedIn bool     `json:"isLoggedIn"`
}

type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

func encodeState(s State) (string, error) {
	data, err := json.Marshal(envelope{State: s})
	if err != nil {
		return "", errors.Wrap(err, "encode session")
	}
	return string(data), nil
}

func decodeState(raw string) (State, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return State{}, errors.Wrap(err, "decode session")
	}
	if env.State.User == nil {
		env.State.IsLoggedIn = false
	}
	return env.State, nil
}
