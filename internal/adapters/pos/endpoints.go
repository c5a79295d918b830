package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"time"

	"posbridge/internal/core/normalize"
	perr "posbridge/internal/platform/errors"
)

// wire layout the olap report endpoint expects
const timeParamLayout = "2006-01-02T15:04:05"

// feed describes how one entity is pulled from the vendor
type feed struct {
	report string // olap report type, "" for plain list endpoints
	path   string
}

var feeds = map[string]feed{
	"organizations": {path: "/resto/api/corporation/departments"},
	"products":      {path: "/resto/api/v2/entities/products/list"},
	"sales":         {report: "SALES", path: "/resto/api/v2/reports/olap"},
	"transactions":  {report: "TRANSACTIONS", path: "/resto/api/v2/reports/olap"},
}

// olapRequest is the report body for windowed feeds
type olapRequest struct {
	ReportType string            `json:"reportType"`
	BuildSumm  bool              `json:"buildSummary"`
	Filters    map[string]filter `json:"filters"`
}

type filter struct {
	FilterType string `json:"filterType"`
	From       string `json:"from"`
	To         string `json:"to"`
	IncludeLow bool   `json:"includeLow"`
	IncludeHi  bool   `json:"includeHigh"`
}

// olapResponse wraps report rows
type olapResponse struct {
	Data []normalize.RawRecord `json:"data"`
}

// windowFilterKey positions each report type on its time axis
var windowFilterKey = map[string]string{
	"SALES":        "OpenDate.Typed",
	"TRANSACTIONS": "DateTime.Typed",
}

// Fetch pulls one entity's raw rows for the half-open [from, to) window.
// Snapshot feeds ignore the bounds. Serialized: only one fetch talks to the
// vendor at a time.
func (c *Client) Fetch(ctx context.Context, entity string, from, to time.Time) ([]normalize.RawRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := feeds[entity]
	if !ok {
		return nil, perr.InvalidArgf("pos: unknown entity %q", entity)
	}

	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}

	if f.report == "" {
		return c.fetchList(ctx, f.path)
	}
	return c.fetchReport(ctx, f, from, to)
}

// fetchList pulls a snapshot endpoint returning a bare JSON array
func (c *Client) fetchList(ctx context.Context, path string) ([]normalize.RawRecord, error) {
	q := url.Values{}
	q.Set("key", c.token)
	body, err := c.get(ctx, path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var rows []normalize.RawRecord
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "pos list decode failed")
	}
	return rows, nil
}

// fetchReport posts an olap request bounded to the window
func (c *Client) fetchReport(ctx context.Context, f feed, from, to time.Time) ([]normalize.RawRecord, error) {
	reqBody := olapRequest{
		ReportType: f.report,
		Filters: map[string]filter{
			windowFilterKey[f.report]: {
				FilterType: "DateRange",
				From:       from.Format(timeParamLayout),
				To:         to.Format(timeParamLayout),
				IncludeLow: true,
				IncludeHi:  false, // half-open window
			},
		},
	}
	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "pos report encode failed")
	}

	q := url.Values{}
	q.Set("key", c.token)
	body, err := c.do(ctx, "POST", f.path+"?"+q.Encode(), "application/json", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	var resp olapResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "pos report decode failed")
	}
	return resp.Data, nil
}
