package mvg

import (
	"context"

	"github.com/mvgsensor/mvg-go/internal/models"
)

// rawMessage is the wire shape of a service message. Affected lines arrive
// as objects; only the label is kept.
type rawMessage struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Publication int64  `json:"publication"`
	ValidFrom   int64  `json:"validFrom"`
	ValidTo     int64  `json:"validTo"`
	Lines       []struct {
		Label string `json:"label"`
	} `json:"lines"`
}

// Messages retrieves the current network-wide service messages (incidents,
// schedule changes).
func (c *Client) Messages(ctx context.Context) ([]models.Message, error) {
	var result []rawMessage
	if err := c.call(ctx, c.fibBase, endpointMessages, nil, &result); err != nil {
		return nil, err
	}

	messages := make([]models.Message, 0, len(result))
	for _, raw := range result {
		msg := models.Message{
			Title:       raw.Title,
			Description: raw.Description,
			Type:        raw.Type,
			Publication: raw.Publication,
			ValidFrom:   raw.ValidFrom,
			ValidTo:     raw.ValidTo,
		}
		for _, line := range raw.Lines {
			msg.Lines = append(msg.Lines, line.Label)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
