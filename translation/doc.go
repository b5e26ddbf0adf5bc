// Package translation translates text through the IBM Watson Language
// Translator API.
//
// The API key comes from translation.api_key or, when that is empty, from
// IBM_WATSON_API_KEY read on every call. Without a key no request is made.
package translation
