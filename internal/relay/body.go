package relay

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apierrors "github.com/diogo/barbchat/internal/errors"
)

// PatchBody returns body with stream forced to true and system set to
// systemPrompt. The body is edited in place so every other field, known or
// not, reaches upstream byte for byte.
func PatchBody(body []byte, systemPrompt string) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("request body is not valid JSON", string(body))
	}
	if !gjson.ParseBytes(body).IsObject() {
		return nil, apierrors.NewParseError("request body must be a JSON object", string(body))
	}

	// A duplicated key would reach upstream after ours, and the last one wins
	patched, err := deleteAll(body, "stream", "system")
	if err != nil {
		return nil, apierrors.NewParseError("failed to clear overridden fields: "+err.Error(), string(body))
	}

	patched, err = sjson.SetBytes(patched, "stream", true)
	if err != nil {
		return nil, apierrors.NewParseError("failed to set stream: "+err.Error(), string(body))
	}
	patched, err = sjson.SetBytes(patched, "system", systemPrompt)
	if err != nil {
		return nil, apierrors.NewParseError("failed to set system: "+err.Error(), string(body))
	}
	return patched, nil
}

// deleteAll removes every top-level occurrence of each key
func deleteAll(body []byte, keys ...string) ([]byte, error) {
	out := append([]byte(nil), body...)
	for _, key := range keys {
		for gjson.GetBytes(out, key).Exists() {
			var err error
			if out, err = sjson.DeleteBytes(out, key); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
