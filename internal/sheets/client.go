package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// ErrUnavailable indicates a transport or auth failure talking to the Sheets
// API. The run should abort rather than retry.
var ErrUnavailable = errors.New("sheets unavailable")

// ErrRateLimited indicates the API returned HTTP 429.
var ErrRateLimited = errors.New("sheets rate limited")

// RangeValues pairs one A1 range with the values to write into it.
type RangeValues struct {
	Range  string
	Values [][]any
}

// Client wraps the Google Sheets API service
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client over an authenticated HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// ReadRange returns the cells of a range as strings. Trailing empty cells are
// absent from the API response, so rows may be shorter than the range width.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapErr(fmt.Sprintf("read range %s", readRange), err)
	}
	return toStringRows(resp.Values), nil
}

// WriteRange writes values into one range, raw (no cell parsing by Sheets).
func (c *Client) WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]any) error {
	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{
		Values: toInterfaceRows(values),
	}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return wrapErr(fmt.Sprintf("write range %s", writeRange), err)
	}
	return nil
}

// AppendRows appends rows after the last row of the given table range.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, tableRange string, values [][]any) error {
	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, tableRange, &sheets.ValueRange{
		Values: toInterfaceRows(values),
	}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return wrapErr(fmt.Sprintf("append rows to %s", tableRange), err)
	}
	return nil
}

// BatchWrite writes multiple ranges in one call. The call is all-or-nothing
// from the caller's perspective: on error none of the ranges are assumed
// written, and the next run re-derives the whole batch.
func (c *Client) BatchWrite(ctx context.Context, spreadsheetID string, writes []RangeValues) error {
	if len(writes) == 0 {
		return nil
	}

	data := make([]*sheets.ValueRange, len(writes))
	for i, w := range writes {
		data[i] = &sheets.ValueRange{
			Range:  w.Range,
			Values: toInterfaceRows(w.Values),
		}
	}

	_, err := c.service.Spreadsheets.Values.BatchUpdate(spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return wrapErr(fmt.Sprintf("batch write %d ranges", len(writes)), err)
	}
	return nil
}

// toStringRows converts the API's loosely typed cells into strings.
func toStringRows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows
}

func toInterfaceRows(values [][]any) [][]interface{} {
	rows := make([][]interface{}, len(values))
	for i, row := range values {
		rows[i] = row
	}
	return rows
}

func wrapErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", ErrRateLimited, op)
	}
	return fmt.Errorf("%w: failed to %s: %v", ErrUnavailable, op, err)
}
