// Package llm provides language-model clients for the two capabilities the
// application consumes: classifying a transaction description into the fixed
// category taxonomy, and generating short natural-language text from
// structured facts. Providers are interchangeable behind the Client
// interface; gemini, openai, and anthropic are supported.
package llm
