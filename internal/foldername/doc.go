// Package foldername extracts a search title and bracketed hint fields from
// loosely structured visual novel folder names such as
// "[Key][040428] Clannad (18+) {patched}".
package foldername
