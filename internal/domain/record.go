package domain

// IDKey is the record key holding the producing rule's output tag.
const IDKey = "@id"

// Record is the structured form of one template occurrence. Values are
// strings, []string, []any of group elements, or nested maps, so a Record
// always serializes to JSON.
type Record map[string]any

// ID returns the record's output tag.
func (r Record) ID() string {
	s, _ := r[IDKey].(string)
	return s
}

// String returns the string stored under key, or "".
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// FilterRecords returns the records whose ID is one of ids, in order.
func FilterRecords(rs []Record, ids ...string) []Record {
	var out []Record
	for _, r := range rs {
		for _, id := range ids {
			if r.ID() == id {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
