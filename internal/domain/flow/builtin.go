package flow

// builtinFlows returns the flows shipped with the service. Deployments layer
// their own flows on top via FLOW_CONFIG_PATH.
func builtinFlows() map[string]Flow {
	return map[string]Flow{
		"default": {
			ID: "default",
			States: map[string]StateDefinition{
				"greeting": {
					Responses: []string{
						"Hello! Thank you for calling. How can I assist you today?",
						"Hi there! How may I help you today?",
						"Welcome! What can I do for you?",
					},
					NextStates: []string{"information", "booking", "complaint", "farewell"},
				},
				"information": {
					Responses: []string{
						"I'd be happy to provide that information. What specifically would you like to know?",
						"I can help with that. Could you please specify what information you're looking for?",
					},
					NextStates: []string{"information", "booking", "complaint", "farewell"},
				},
				"booking": {
					Responses: []string{
						"I can help you schedule that. When would you like to book it?",
						"I'd be happy to assist with booking. What date works best for you?",
					},
					NextStates: []string{"booking", "information", "complaint", "farewell"},
				},
				"complaint": {
					Responses: []string{
						"I'm sorry to hear that. Could you please provide more details about the issue?",
						"I apologize for the inconvenience. Please tell me more about what happened.",
					},
					NextStates: []string{"complaint", "transfer", "farewell"},
				},
				"transfer": {
					Responses: []string{
						"I'll connect you with a human representative right away. Please hold.",
						"I understand you'd like to speak with a person. I'm transferring you now.",
					},
					NextStates: []string{},
				},
				"farewell": {
					Responses: []string{
						"Thank you for calling. Have a great day!",
						"Thank you for your time. Goodbye!",
					},
					NextStates: []string{},
				},
			},
		},
		"real_estate": {
			ID: "real_estate",
			States: map[string]StateDefinition{
				"greeting": {
					Responses: []string{
						"Hello! Thank you for calling our real estate service. How can I assist you today?",
						"Welcome to our real estate hotline. How may I help you?",
					},
					NextStates: []string{"property_inquiry", "viewing_schedule", "price_inquiry", "farewell"},
				},
				"property_inquiry": {
					Responses: []string{
						"I'd be happy to tell you about our properties. What area are you interested in?",
						"We have several properties available. Are you looking for a specific location or type of property?",
					},
					NextStates: []string{"viewing_schedule", "price_inquiry", "farewell"},
				},
				"viewing_schedule": {
					Responses: []string{
						"I can arrange a viewing for you. What day and time would suit you?",
					},
					NextStates: []string{"property_inquiry", "farewell"},
				},
				"price_inquiry": {
					Responses: []string{
						"Prices vary by property. Which listing would you like pricing for?",
					},
					NextStates: []string{"property_inquiry", "viewing_schedule", "farewell"},
				},
				"transfer": {
					Responses: []string{
						"Let me connect you with one of our agents. One moment please.",
					},
					NextStates: []string{},
				},
				"farewell": {
					Responses: []string{
						"Thank you for calling our real estate service. Goodbye!",
					},
					NextStates: []string{},
				},
			},
		},
		"customer_support": {
			ID: "customer_support",
			States: map[string]StateDefinition{
				"greeting": {
					Responses: []string{
						"Hello! Thank you for calling customer support. How can I assist you today?",
						"Welcome to customer support. How may I help you?",
					},
					NextStates: []string{"issue_report", "account_inquiry", "product_inquiry", "farewell"},
				},
				"issue_report": {
					Responses: []string{
						"I'm sorry to hear you're experiencing an issue. Could you please describe the problem?",
						"I'd be happy to help resolve your issue. What seems to be the problem?",
					},
					NextStates: []string{"issue_report", "transfer", "farewell"},
				},
				"account_inquiry": {
					Responses: []string{
						"I can help with your account. Could you verify the phone number on file?",
					},
					NextStates: []string{"issue_report", "farewell"},
				},
				"product_inquiry": {
					Responses: []string{
						"Which product would you like to know more about?",
					},
					NextStates: []string{"issue_report", "farewell"},
				},
				"transfer": {
					Responses: []string{
						"I'm escalating this to a support specialist now. Please hold.",
					},
					NextStates: []string{},
				},
				"farewell": {
					Responses: []string{
						"Thank you for contacting support. Goodbye!",
					},
					NextStates: []string{},
				},
			},
		},
	}
}
