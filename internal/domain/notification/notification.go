package notification

import (
	"encoding/json"
	"strings"
)

// Channel is the delivery channel of a notification
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Channels lists the selectable channels in display order
func Channels() []Channel {
	return []Channel{ChannelSMS, ChannelWhatsApp}
}

// Label returns the human readable channel name
func (c Channel) Label() string {
	switch c {
	case ChannelSMS:
		return "SMS"
	case ChannelWhatsApp:
		return "WhatsApp"
	default:
		return string(c)
	}
}

// ParseChannel normalizes a submitted channel, falling back to SMS
func ParseChannel(value string) Channel {
	switch Channel(strings.ToLower(strings.TrimSpace(value))) {
	case ChannelWhatsApp:
		return ChannelWhatsApp
	default:
		return ChannelSMS
	}
}

// Request is a one-shot notification to a guest
type Request struct {
	Channel Channel `json:"channel"`
	To      string  `json:"to"`
	Message string  `json:"message"`
}

// NewRequest returns an empty request on the default channel
func NewRequest() Request {
	return Request{Channel: ChannelSMS}
}

// Result is the backend's answer to a dispatch. Only Status is consumed.
type Result struct {
	Status string `json:"status"`
}

// UnmarshalJSON keeps a status of any JSON type, rendering non-strings as
// their JSON text ("200", "true", "null").
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Result{}
	status, ok := raw["status"]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(status, &r.Status); err != nil || string(status) == "null" {
		r.Status = string(status)
	}
	return nil
}

// Toast is the status line shown after a dispatch
func (r Result) Toast() string {
	return "Notification " + r.Status
}
