package route

import (
	"famcal/src-server/utils"
	"fmt"
	"strings"
	"time"
)

// parseDateParam resolves a date query param. Blank means today; otherwise
// try `DD/MM/YYYY` first, then hand the text to the natural-language
// parser ("today", "next monday", ...).
func parseDateParam(as *utils.AppState, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().In(as.Config.GetLocation()), nil
	}

	if date, err := time.ParseInLocation("02/01/2006", raw, as.Config.GetLocation()); err == nil {
		return date, nil
	}

	result, err := as.When.Parse(raw, time.Now().In(as.Config.GetLocation()))
	if err != nil {
		return time.Time{}, fmt.Errorf("parseDateParam: %w", err)
	}
	if result == nil {
		return time.Time{}, fmt.Errorf("parseDateParam: can't make sense of %q", raw)
	}
	return result.Time, nil
}
