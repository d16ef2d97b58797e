// Package callcenterserver implements the call-api service which provides
// conversational call handling for an AI call center.
//
// The service provides:
//   - Inbound call answering and outbound dialing against a telephony provider
//   - Flow-driven conversation turns with intent and sentiment analysis
//   - Speech-to-text and text-to-speech collaborators with local and Google variants
//   - Transfer to a human agent by intent or negative sentiment
//   - Call transcripts, recordings, summaries, and webhook event delivery
package callcenterserver
