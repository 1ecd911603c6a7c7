// Package sse turns an upstream server-sent-event byte stream into reply text deltas.
//
// The Decoder is fed raw network chunks in arrival order. It decodes UTF-8
// incrementally, holding incomplete multi-byte sequences until the next chunk,
// splits on line feeds, keeps the trailing partial line for the next call,
// and extracts the text of content_block_delta events. Lines that are not
// data lines, the [DONE] sentinel, and payloads that are not valid JSON are
// skipped without error.
package sse
