package httputil

import "net/http"

// DefaultUserAgent identifies this client to upstream APIs.
const DefaultUserAgent = "pricecompare/1.0 (+https://github.com/lukman83/pricecompare)"

// JSONHeaders returns headers for plain JSON APIs.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Encoding", "gzip, br")
	return h
}

// RapidAPIHeaders returns the headers every RapidAPI-hosted API requires.
func RapidAPIHeaders(apiKey, host string) http.Header {
	h := JSONHeaders()
	h.Set("X-RapidAPI-Key", apiKey)
	h.Set("X-RapidAPI-Host", host)
	return h
}

// BearerHeaders returns JSON headers with a bearer token.
func BearerHeaders(token string) http.Header {
	h := JSONHeaders()
	h.Set("Authorization", "Bearer "+token)
	return h
}
