package requests

type EmailPayload struct {
	Subject  string            `json:"subject"`
	From     string            `json:"from"`
	To       []string          `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data,omitempty"`
}
