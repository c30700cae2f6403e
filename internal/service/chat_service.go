package service

import "strings"

type chatRule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first whose keyword appears in the
// message wins.
var chatRules = []chatRule{
	{
		keywords: []string{"hi", "hello", "hey", "greetings"},
		reply:    "Hello! I'm here to help you navigate the Crowd Heatmap application. How can I assist you today?",
	},
	{
		keywords: []string{"help", "what can you do", "how does this work"},
		reply: `I can help you with:
1. Searching for locations - Use the search field in the top panel
2. Finding your location - Click the 'Find My Location' button
3. Finding popular places - Click 'Find Popular Places' to see places within 5km
4. Submitting your business information - Fill out the form with your details and preferred crowd intensity
5. Understanding crowd intensity levels - High, Medium, or Low based on your business needs`,
	},
	{
		keywords: []string{"search", "how to search", "find location"},
		reply:    "To search for a location, type in the search field at the top. The map will show results from OpenStreetMap. You can click on any result to see it on the map.",
	},
	{
		keywords: []string{"form", "submit", "business", "crowd intensity"},
		reply: `The form collects your business information:
- Personal details: Name, Email, Phone
- Business Type: What kind of business you're starting
- Crowd Intensity:
  * High: For businesses that need high foot traffic
  * Medium: For businesses that prefer moderate crowd levels
  * Low: For businesses that work better in quieter areas`,
	},
	{
		keywords: []string{"accuracy", "meter"},
		reply:    "The accuracy meter shows how accurate the location data is compared to OpenStreetMap. Higher accuracy means more reliable location information.",
	},
	{
		keywords: []string{"map"},
		reply:    "The map uses OpenStreetMap. You can click and drag to move around, use the +/- buttons to zoom, and click the minimize/maximize button to toggle the map size.",
	},
}

const chatFallback = "I'm here to help! Try asking about: searching locations, finding your location, popular places, submitting forms, or understanding crowd intensity. Or type 'help' for more information."

// ChatService answers questions about the app with canned replies
type ChatService struct{}

// NewChatService creates a new chat service
func NewChatService() *ChatService {
	return &ChatService{}
}

// Reply returns the canned answer for message. Matching is a
// case-insensitive substring test.
func (s *ChatService) Reply(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.reply
			}
		}
	}
	return chatFallback
}
