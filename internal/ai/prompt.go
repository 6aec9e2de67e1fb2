package ai

import "fmt"

// BuildPrompt answers the last customer message, or greets when there is none.
func BuildPrompt(contactName, lastCustomerMessage string, hasCustomerMessage bool) string {
	if hasCustomerMessage {
		return fmt.Sprintf("You are a helpful customer service agent. The customer, %s, said: \"%s\". Please provide a concise and helpful response. Keep it under 50 words.",
			contactName, lastCustomerMessage)
	}
	return fmt.Sprintf("You are a helpful customer service agent. Generate an initial greeting for %s. Keep it under 30 words.", contactName)
}
