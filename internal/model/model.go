package model

import "time"

// Wire types for the shopping-list backend. The server owns all of these;
// the client holds transient copies and never mutates them locally.

// User is the identity record returned by /auth/me and embedded in groups.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Group is a named collection of users sharing one item list.
// Joining may require a password; that is enforced server-side.
type Group struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Owner     User      `json:"owner"`
	Members   []User    `json:"members"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is a single shopping-list entry inside a group.
type Item struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedBy User      `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginResult is the /auth response: a bearer token, and on some backend
// versions the resolved user alongside it.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
