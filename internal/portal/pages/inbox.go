package pages

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/interseguro-qa/paynova-e2e/internal/portal"
	"github.com/interseguro-qa/paynova-e2e/internal/suite/money"
)

// InboxRow represents a row in the pending-requests table.
type InboxRow struct {
	Correlative string
	Incident    string
	Memo        string
	Amount      money.Amount
	Currency    string
	State       string
}

// Matches reports whether the row belongs to the request identified by the
// given correlative or incident (either is sufficient; the inbox sometimes
// truncates one of them).
func (r *InboxRow) Matches(correlative, incident string) bool {
	if correlative != "" && r.Correlative == correlative {
		return true
	}
	return incident != "" && r.Incident == incident
}

// ParseInbox parses the pending-requests table HTML into rows.
func ParseInbox(html string) ([]InboxRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse inbox: %w", err)
	}

	table := doc.Find(SelectorInboxTable).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: table not found with selector: %s",
			portal.ErrElementNotFound, SelectorInboxTable)
	}

	var (
		rows     []InboxRow
		parseErr error
	)

	table.Find("tbody tr").Each(func(i int, s *goquery.Selection) {
		if parseErr != nil {
			return
		}

		row, err := parseInboxRow(s)
		if err != nil {
			parseErr = fmt.Errorf("failed to parse row %d: %w", i, err)
			return
		}
		if row != nil {
			rows = append(rows, *row)
		}
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return rows, nil
}

// parseInboxRow maps the cells of one inbox row. Layout:
// correlative | incident | memo | amount | currency | state | actions.
// Rows with fewer cells (placeholders, "no results" banners) are skipped.
func parseInboxRow(s *goquery.Selection) (*InboxRow, error) {
	cells := s.Find("td")
	if cells.Length() < 6 {
		return nil, nil
	}

	cellText := func(i int) string {
		return strings.TrimSpace(cells.Eq(i).Text())
	}

	amountStr := cellText(3)
	amount, err := money.ParseAmount(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amountStr, err)
	}

	return &InboxRow{
		Correlative: cellText(0),
		Incident:    cellText(1),
		Memo:        cellText(2),
		Amount:      amount,
		Currency:    cellText(4),
		State:       cellText(5),
	}, nil
}

// FindInboxRow returns the first row matching the correlative or incident.
func FindInboxRow(rows []InboxRow, correlative, incident string) (*InboxRow, bool) {
	for i := range rows {
		if rows[i].Matches(correlative, incident) {
			return &rows[i], true
		}
	}
	return nil, false
}
