package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"tingnect-api/internal/apperr"
	"tingnect-api/internal/models"
	"tingnect-api/internal/util"
)

const memberColumns = 14 // A:N

var roleDisplay = map[string]string{
	"developer": "👨‍💻 Developer",
	"founder":   "🚀 Founder",
	"investor":  "💰 Investor",
	"builder":   "🔨 Builder",
	"designer":  "🎨 Designer",
	"marketer":  "📢 Marketer",
	"community": "👥 Community Manager",
	"other":     "🔥 Other",
}

var experienceDisplay = map[string]string{
	"beginner":     "🌱 Beginner (0-1y)",
	"intermediate": "🚀 Intermediate (1-3y)",
	"advanced":     "⚡ Advanced (3-5y)",
	"expert":       "💎 Expert (5y+)",
}

// FormatRole returns the display form of a known role, or the raw value.
// Unknown values pass through unchanged.
func FormatRole(role string) string {
	if role == "" {
		return ""
	}
	if d, ok := roleDisplay[role]; ok {
		return d
	}
	return role
}

// FormatExperience returns the display form of a known level, or the raw value.
func FormatExperience(exp string) string {
	if exp == "" {
		return ""
	}
	if d, ok := experienceDisplay[exp]; ok {
		return d
	}
	return exp
}

func (c *Client) idRange() string    { return c.sheetName + "!A:A" }
func (c *Client) valueRange() string { return c.sheetName + "!A:N" }

func (c *Client) readIDColumn(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.idRange()).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	return resp.Values, nil
}

// FindDuplicate reports whether cardID already appears in the ID column,
// skipping the header row. Full-column scan; fine at this sheet's volume.
func (c *Client) FindDuplicate(ctx context.Context, cardID string) (bool, error) {
	values, err := c.readIDColumn(ctx)
	if err != nil {
		return false, err
	}
	for i := 1; i < len(values); i++ {
		row := values[i]
		if len(row) > 0 && fmt.Sprint(row[0]) == cardID {
			return true, nil
		}
	}
	return false, nil
}

// AppendRegistration appends one row for reg and returns its header-relative
// row number. The caller is expected to have checked for duplicates; the
// check-then-append pair is not atomic, so concurrent submissions of the
// same card ID can still both land.
func (c *Client) AppendRegistration(ctx context.Context, reg models.Registration, ip string) (int, error) {
	current, err := c.readIDColumn(ctx)
	if err != nil {
		return 0, err
	}
	total := len(current)
	if total == 0 {
		total = 1
	}
	sheetRow := total + 1     // absolute row incl. header
	rowNumber := sheetRow - 1 // what members see

	vr := &sheetsv4.ValueRange{Values: [][]interface{}{c.memberRow(reg, ip, rowNumber)}}
	_, err = c.srv.Spreadsheets.Values.Append(c.spreadsheetID, c.valueRange(), vr).
		ValueInputOption("USER_ENTERED"). // lets the hyperlink formula evaluate
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return 0, classify(err)
	}

	c.formatRow(ctx, sheetRow)

	return rowNumber, nil
}

func (c *Client) memberRow(reg models.Registration, ip string, rowNumber int) []interface{} {
	return []interface{}{
		reg.CardID,
		reg.FullName,
		reg.Email,
		reg.Phone,
		reg.Telegram,
		FormatRole(reg.Role),
		FormatExperience(reg.Experience),
		strings.Join(reg.Interests, ", "),
		"✅ ACTIVE",
		vnTime(reg.Timestamp),
		util.Truncate(reg.UserAgent, 50),
		ip,
		fmt.Sprintf(`=HYPERLINK("%s", "TingNect")`, c.mainSiteURL),
		strconv.Itoa(rowNumber),
	}
}

// vnTime renders an RFC3339 timestamp in the community's local time.
func vnTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t = time.Now()
	}
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		loc = time.FixedZone("ICT", 7*3600)
	}
	return t.In(loc).Format("02/01/2006 15:04:05")
}

// formatRow applies the cosmetic row style. Decoration only: failures are
// logged and swallowed.
func (c *Client) formatRow(ctx context.Context, sheetRow int) {
	grey := &sheetsv4.Color{Red: 0.8, Green: 0.8, Blue: 0.8}
	border := &sheetsv4.Border{Style: "SOLID", Width: 1, Color: grey}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			RepeatCell: &sheetsv4.RepeatCellRequest{
				Range: &sheetsv4.GridRange{
					SheetId:          0,
					StartRowIndex:    int64(sheetRow - 1),
					EndRowIndex:      int64(sheetRow),
					StartColumnIndex: 0,
					EndColumnIndex:   memberColumns,
				},
				Cell: &sheetsv4.CellData{
					UserEnteredFormat: &sheetsv4.CellFormat{
						BackgroundColor: &sheetsv4.Color{Red: 0.95, Green: 0.98, Blue: 1.0},
						TextFormat: &sheetsv4.TextFormat{
							FontFamily: "Google Sans",
							FontSize:   10,
						},
						Borders: &sheetsv4.Borders{
							Top:    border,
							Bottom: border,
							Left:   border,
							Right:  border,
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat,borders)",
			},
		}},
	}
	if _, err := c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		c.log.Warn().Err(err).Int("row", sheetRow).Msg("row formatting failed")
	}
}

// ListMembers reads every member row including the header, as strings.
func (c *Client) ListMembers(ctx context.Context) ([][]string, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, c.valueRange()).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i := range row {
			cells[i] = get(row, i)
		}
		out = append(out, cells)
	}
	return out, nil
}

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

// classify maps Google API failures onto the service error taxonomy.
func classify(err error) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		switch gerr.Code {
		case 429:
			return apperr.Wrap(err, apperr.CodeUnavailable,
				"Google Sheets service temporarily unavailable. Please try again later.")
		case 401, 403:
			return apperr.Wrap(err, apperr.CodeUnauthorized, "sheets credentials rejected")
		}
	}
	return apperr.Wrap(err, apperr.CodeUnknown, "sheets request failed")
}
