package oracleController

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TgID Telegram ID пользователя. Мини-апп присылает его то числом,
// то строкой, поэтому тип принимает оба варианта.
type TgID string

func (t *TgID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = ""
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TgID(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tgId must be a string or a number")
	}
	*t = TgID(n.String())
	return nil
}

func (t TgID) String() string {
	return string(t)
}

// DailyCardRequest тело POST /daily-card
type DailyCardRequest struct {
	TgID TgID   `json:"tgId"`
	Name string `json:"name"`
}
