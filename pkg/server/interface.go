/*
Package server implements msgpack IPC for dictionary lookups.

The server reads a stream of msgpack encoded requests from stdin and writes one
msgpack encoded response per request to stdout. Requests are handled one at a
time, in arrival order. Every message carries an ID that is echoed back.

# IPC

A lookup runs an exact search and falls back to the closest key:

	{"id": "q1", "a": "lookup", "k": "12 MAIN ST"}

The response lists the matched records, the key they were stored under and the
comparison counters of the search:

	{"id": "q1", "o": "found", "k": "12 MAIN ST", "r": [{"EZI_ADD": "12 MAIN ST", ...}],
	 "c": 1, "b": 88, "n": 4, "s": 1, "t": 12}

The action defaults to "lookup" when omitted. Key completion lists keys under
a prefix, most records first:

	{"id": "c1", "a": "complete", "p": "12 MA", "l": 5}

Dictionary statistics:

	{"id": "s1", "a": "stats"}

Failed requests are answered with an ErrorResponse.
*/
package server

// Actions understood by the server.
const (
	ActionLookup   = "lookup"
	ActionComplete = "complete"
	ActionStats    = "stats"
)

// Error codes carried by ErrorResponse.
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

// Request - any client request, fields are read depending on Action
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a,omitempty"`
	Key    string `msgpack:"k,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// LookupResponse - records found for a key
type LookupResponse struct {
	ID        string              `msgpack:"id"`
	Outcome   string              `msgpack:"o"`
	Key       string              `msgpack:"k,omitempty"`
	Records   []map[string]string `msgpack:"r"`
	Count     int                 `msgpack:"c"`
	BitCmps   int                 `msgpack:"b"`
	NodeCmps  int                 `msgpack:"n"`
	StrCmps   int                 `msgpack:"s"`
	TimeTaken int64               `msgpack:"t"`
}

// CompletionSuggestion - a key and how many records it holds
type CompletionSuggestion struct {
	Key   string `msgpack:"k"`
	Count int    `msgpack:"n"`
}

// CompletionResponse - completion response
type CompletionResponse struct {
	ID          string                 `msgpack:"id"`
	Suggestions []CompletionSuggestion `msgpack:"s"`
	Count       int                    `msgpack:"c"`
	TimeTaken   int64                  `msgpack:"t"`
}

// StatsResponse - dictionary and server counters
type StatsResponse struct {
	ID       string `msgpack:"id"`
	Records  int    `msgpack:"records"`
	Keys     int    `msgpack:"keys"`
	Skipped  int    `msgpack:"skipped"`
	MaxCount int    `msgpack:"max_count"`
	Bytes    int64  `msgpack:"bytes"`
	Requests int    `msgpack:"requests"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
