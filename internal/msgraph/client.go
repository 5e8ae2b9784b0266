package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const graphBaseURL = "https://graph.microsoft.com/v1.0"

// Client is a minimal Microsoft Graph API client for calendar access.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Graph client on top of an authenticated http.Client,
// usually one from Authenticator.HTTPClient.
func NewClient(httpClient *http.Client) *Client {
	return &Client{httpClient: httpClient}
}

// CalendarEvent is one event from the user's calendar view.
type CalendarEvent struct {
	ID          string       `json:"id"`
	Subject     string       `json:"subject"`
	Start       DateTimeZone `json:"start"`
	End         DateTimeZone `json:"end"`
	ShowAs      string       `json:"showAs"`
	IsAllDay    bool         `json:"isAllDay"`
	IsCancelled bool         `json:"isCancelled"`
	Sensitivity string       `json:"sensitivity"`
}

// DateTimeZone is the Graph representation of a timestamp.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Time parses the Graph timestamp in the requested location.
func (d DateTimeZone) Time(loc *time.Location) (time.Time, error) {
	// Graph returns fractional seconds without a zone designator.
	t, err := time.ParseInLocation("2006-01-02T15:04:05.9999999", d.DateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing event time %q: %w", d.DateTime, err)
	}
	return t, nil
}

type calendarViewResponse struct {
	Value    []CalendarEvent `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// GetCalendarView fetches all calendar events between from and to,
// following pagination. Event times are returned in the given IANA
// timezone.
func (c *Client) GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error) {
	q := url.Values{}
	q.Set("startDateTime", from.UTC().Format(time.RFC3339))
	q.Set("endDateTime", to.UTC().Format(time.RFC3339))
	q.Set("$top", "100")
	q.Set("$select", "id,subject,start,end,showAs,isAllDay,isCancelled,sensitivity")

	next := graphBaseURL + "/me/calendarView?" + q.Encode()

	var events []CalendarEvent
	for next != "" {
		page, link, err := c.getCalendarPage(ctx, next, timezone)
		if err != nil {
			return nil, err
		}
		events = append(events, page...)
		next = link
	}
	return events, nil
}

func (c *Client) getCalendarPage(ctx context.Context, rawURL, timezone string) ([]CalendarEvent, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building calendar request: %w", err)
	}
	req.Header.Set("Prefer", fmt.Sprintf(`outlook.timezone="%s"`, timezone))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, "", fmt.Errorf("calendar request returned %s: %s", resp.Status, body)
	}

	var parsed calendarViewResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, "", fmt.Errorf("decoding calendar response: %w", err)
	}
	return parsed.Value, parsed.NextLink, nil
}
