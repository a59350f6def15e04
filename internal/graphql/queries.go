package graphql

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/dmitrijs2005/progressboard/internal/models"
)

// userLookupTimeout bounds a shared user lookup once it is detached from
// its callers.
const userLookupTimeout = 30 * time.Second

const userQuery = `{ user { id login campus attrs profile } }`

const experienceQuery = `query ($userId: Int!) {
  transaction(
    where: {userId: {_eq: $userId}, type: {_eq: "xp"}, object: {type: {_neq: "exercise"}}}
    order_by: {createdAt: desc}
  ) { id amount createdAt path object { id name type } }
}`

const progressQuery = `query ($userId: Int!) {
  progress(
    where: {userId: {_eq: $userId}}
    order_by: {createdAt: desc}
  ) { id grade createdAt path object { id name type } }
}`

// GetUserInfo returns the signed-in user. Concurrent calls for the same
// session share one request.
func (c *Client) GetUserInfo(ctx context.Context) (*models.User, error) {
	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}

	// The shared lookup outlives any single caller; each caller still
	// stops waiting when its own ctx is done.
	ch := c.users.DoChan(sess.Token(), func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), userLookupTimeout)
		defer cancel()
		data, err := c.Execute(lookupCtx, userQuery, nil)
		if err != nil {
			return nil, err
		}
		var out struct {
			User []models.User `json:"user"`
		}
		if err := decode(data, &out); err != nil {
			return nil, err
		}
		if len(out.User) == 0 {
			return nil, fmt.Errorf("%w: %v", common.ErrDataUnavailable, errNoUser)
		}
		return &out.User[0], nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		u := *r.Val.(*models.User)
		return &u, nil
	}
}

// GetUserExperience returns the user's experience transactions, newest
// first. Exercises are excluded by the query.
func (c *Client) GetUserExperience(ctx context.Context) ([]models.Transaction, error) {
	u, err := c.GetUserInfo(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.Execute(ctx, experienceQuery, map[string]any{"userId": u.ID})
	if err != nil {
		return nil, err
	}
	var out struct {
		Transaction []models.Transaction `json:"transaction"`
	}
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return out.Transaction, nil
}

// GetUserProgress returns every progress record of the user, newest first.
func (c *Client) GetUserProgress(ctx context.Context) ([]models.ProgressRecord, error) {
	u, err := c.GetUserInfo(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.Execute(ctx, progressQuery, map[string]any{"userId": u.ID})
	if err != nil {
		return nil, err
	}
	var out struct {
		Progress []models.ProgressRecord `json:"progress"`
	}
	if err := decode(data, &out); err != nil {
		return nil, err
	}
	return out.Progress, nil
}

// GetPassFailRatio returns the records the pass/fail chart is drawn from.
func (c *Client) GetPassFailRatio(ctx context.Context) ([]models.ProgressRecord, error) {
	return c.GetUserProgress(ctx)
}
