// Package mapper converts model values to store values and back.
//
// A Mapper handles one model type and one store kind. Every mapper follows
// the same contract:
//   - ToStore(nil) returns value.Null
//   - ToModel(value.Null) returns nil
//   - ToModel of any other kind than the mapper's own fails with *MappingError
//
// OffsetDateTimeMapper is the mapper for offset date-times (time.Time with a
// fixed zone). The store keeps only the absolute instant, truncated to the
// millisecond. On the way back the instant is paired with the offset of the
// configured location, time.Local unless set otherwise, so the original
// offset is not recovered:
//
//	m := mapper.NewOffsetDateTimeMapper()
//	v, _ := m.ToStore(t)     // value.Timestamp, offset dropped
//	back, _ := m.ToModel(v)  // time.Time in the host's local offset
//
// Registry dispatches by Go type so callers can map a whole property set
// without knowing which mapper serves which field.
package mapper
