package clients

import (
	"context"
	"strconv"
	"time"
)

// User is the record shape served by the user directory. Only existence
// matters to the orchestrator; the payload is carried through opaquely.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type UserClient struct{ c *Client }

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (uc *UserClient) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := uc.c.getJSON(ctx, "/users/"+strconv.FormatInt(id, 10), &u); err != nil {
		return nil, err
	}
	return &u, nil
}
