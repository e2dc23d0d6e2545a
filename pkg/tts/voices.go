package tts

// VoiceMapping maps a short voice key to a vendor-native voice id.
type VoiceMapping struct {
	Key string
	ID  string
}

// VoiceTable is a static, ordered voice key table for one vendor.
// Lookups never fail: unknown keys pass through unchanged so callers can use
// vendor voice ids that are not in the table.
type VoiceTable []VoiceMapping

// Resolve returns the vendor voice id for key, or key itself on a miss.
func (t VoiceTable) Resolve(key string) string {
	for _, v := range t {
		if v.Key == key {
			return v.ID
		}
	}
	return key
}

// Keys returns the voice keys in table order.
func (t VoiceTable) Keys() []string {
	keys := make([]string, len(t))
	for i, v := range t {
		keys[i] = v.Key
	}
	return keys
}

// WithOverrides returns a copy of the table with vendor ids replaced for the
// keys present in overrides. Empty override values and keys unknown to the
// table are ignored, so the catalog stays fixed.
func (t VoiceTable) WithOverrides(overrides map[string]string) VoiceTable {
	out := make(VoiceTable, len(t))
	copy(out, t)
	for i, v := range out {
		if id, ok := overrides[v.Key]; ok && id != "" {
			out[i].ID = id
		}
	}
	return out
}
