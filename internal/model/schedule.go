package model

import (
	"bytes"
	"encoding/json"
)

// UnassignedResource keys appointments whose service needs no resource.
const UnassignedResource = "Unassigned"

// ResourceSchedule maps resource labels to appointments. Keys keep the order
// in which they were first added, and that order is kept when encoding.
type ResourceSchedule struct {
	keys   []string
	groups map[string][]*Appointment
}

func NewResourceSchedule() *ResourceSchedule {
	return &ResourceSchedule{groups: make(map[string][]*Appointment)}
}

// Append adds a to the group for resource, creating the group on first use.
func (s *ResourceSchedule) Append(resource string, a *Appointment) {
	if _, ok := s.groups[resource]; !ok {
		s.keys = append(s.keys, resource)
	}
	s.groups[resource] = append(s.groups[resource], a)
}

func (s *ResourceSchedule) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *ResourceSchedule) Group(resource string) []*Appointment {
	return s.groups[resource]
}

func (s *ResourceSchedule) Len() int {
	return len(s.keys)
}

func (s *ResourceSchedule) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s.groups[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
