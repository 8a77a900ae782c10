package matcher

import "github.com/ritamzico/bexpr/internal/value"

// FrequencyTypeObjectID is the fixed frequency-type-to-object-id mapping
// spec §4.4.2/§9 preserves verbatim from the source rather than redesigning:
// advertiser→20, campaign→30, flight→10, product→40. Flagged by the
// original authors as a likely placeholder; left exactly as observed since
// making it configurable is an open question for the host, not something to
// silently change here.
func FrequencyTypeObjectID(t value.FreqCapType) int64 {
	switch t {
	case value.FreqCapAdvertiser:
		return 20
	case value.FreqCapCampaign:
		return 30
	case value.FreqCapFlight:
		return 10
	case value.FreqCapProduct:
		return 40
	default:
		return 0
	}
}

// matchFrequencyCap implements spec §4.4.2's WITHIN_CAP semantics: scan the
// event's observed frequency_caps list for an entry whose (type, id,
// namespace_str_id) matches the predicate, then compare the observed count
// against the cap's value, accounting for cap expiry via length/timestamp.
func matchFrequencyCap(now int64, caps []value.FrequencyCap, reqType value.FreqCapType, namespaceStrID int32, requestedValue, length int64) bool {
	objectID := FrequencyTypeObjectID(reqType)
	for _, cap := range caps {
		if cap.Type != reqType || cap.ID != objectID || cap.NamespaceStrID != namespaceStrID {
			continue
		}
		if length <= 0 {
			return requestedValue > cap.Value
		}
		if cap.TimestampMicros == 0 {
			return true
		}
		if now-cap.TimestampMicros/1_000_000 > length {
			return true
		}
		return requestedValue > cap.Value
	}
	return true
}
