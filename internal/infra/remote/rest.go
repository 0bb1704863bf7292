package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

const (
	restPrefix = "/rest/v1/"

	// preferRepresentation asks the table endpoint to echo affected rows,
	// which is how server-assigned identifiers and timestamps get back to
	// the caller, and how a zero-row update is detected.
	preferRepresentation = "return=representation"

	orderNewestFirst = "created_at.desc"
)

// eq renders the equality filter operator of the table endpoints.
func eq(value string) string {
	return "eq." + value
}

// selectRows fetches rows matching the query.
func (c *Client) selectRows(ctx context.Context, table string, query url.Values, out any) error {
	if err := c.do(ctx, http.MethodGet, restPrefix+table, query, "", nil, out); err != nil {
		return errors.Wrapf(err, "select from %s", table)
	}

	return nil
}

// insertRow inserts one row and decodes the representation echoed back.
func (c *Client) insertRow(ctx context.Context, table string, payload any, out any) error {
	if err := c.do(ctx, http.MethodPost, restPrefix+table, nil, preferRepresentation, payload, out); err != nil {
		return errors.Wrapf(err, "insert into %s", table)
	}

	return nil
}

// updateRows patches the rows matching the query and decodes the affected
// rows. The identifier filter is mandatory at every call site so an update
// can never scan or mutate unrelated rows.
func (c *Client) updateRows(ctx context.Context, table string, query url.Values, changes map[string]any, out any) error {
	if err := c.do(ctx, http.MethodPatch, restPrefix+table, query, preferRepresentation, changes, out); err != nil {
		return errors.Wrapf(err, "update %s", table)
	}

	return nil
}

// deleteRows removes the rows matching the query.
func (c *Client) deleteRows(ctx context.Context, table string, query url.Values) error {
	if err := c.do(ctx, http.MethodDelete, restPrefix+table, query, "", nil, nil); err != nil {
		return errors.Wrapf(err, "delete from %s", table)
	}

	return nil
}
