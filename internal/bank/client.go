package bank

import (
	"fmt"
	"time"
)

// Client is a customer of the bank. It is a plain entity: the ledger
// behavior lives on the Ledger service, which takes its stores as explicit
// dependencies instead of hiding them inside the entity.
type Client struct {
	id        int64
	username  string
	birthDate time.Time
}

// NewClient creates an unsaved client. The username must already be
// validated by Bank.CreateClient; the birth date keeps date precision only.
func NewClient(username string, birthDate time.Time) *Client {
	return &Client{username: username, birthDate: truncateToDate(birthDate)}
}

// RehydrateClient reconstructs a persisted client from store state.
func RehydrateClient(id int64, username string, birthDate time.Time) *Client {
	return &Client{id: id, username: username, birthDate: truncateToDate(birthDate)}
}

// ID returns the store-assigned identity, 0 while unsaved.
func (c *Client) ID() int64 { return c.id }

// Saved reports whether the store has assigned an identity.
func (c *Client) Saved() bool { return c.id != 0 }

// AssignID is called by stores on first save.
func (c *Client) AssignID(id int64) error {
	if c.id != 0 {
		return ErrAlreadySaved
	}
	c.id = id
	return nil
}

func (c *Client) Username() string { return c.username }

func (c *Client) BirthDate() time.Time { return c.birthDate }

func (c *Client) String() string {
	return fmt.Sprintf("Client{id=%d, username=%q, birthDate=%s}",
		c.id, c.username, c.birthDate.Format("2006-01-02"))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
